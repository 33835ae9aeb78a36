package mapping

// Statement groups
const (
	GroupDML = "DML"
	GroupDDL = "DDL"
)

// OperationGroups maps each command keyword to its group.
// Used by the parser to route statements and to suggest keywords.
var OperationGroups = map[string]string{
	"SELECT": GroupDML,
	"INSERT": GroupDML,
	"UPDATE": GroupDML,
	"DELETE": GroupDML,
	"CREATE": GroupDDL,
	"DROP":   GroupDDL,
}

// Document store operation names, as understood by the MongoDB executor
const (
	DocFind             = "find"
	DocInsertOne        = "insertOne"
	DocInsertMany       = "insertMany"
	DocUpdateMany       = "updateMany"
	DocDeleteMany       = "deleteMany"
	DocCreateCollection = "createCollection"
	DocDropCollection   = "dropCollection"
	DocCreateDatabase   = "createDatabase"
	DocDropDatabase     = "dropDatabase"
)

// OperationMap maps statement kinds to each backend's native verb.
// Kinds: SELECT, INSERT, BULK_INSERT, UPDATE, DELETE, CREATE_TABLE, CREATE_DATABASE,
// DROP_TABLE, DROP_DATABASE.
var OperationMap = map[Backend]map[string]string{
	PostgreSQL: {
		"SELECT":          "SELECT",
		"INSERT":          "INSERT",
		"UPDATE":          "UPDATE",
		"DELETE":          "DELETE",
		"CREATE_TABLE":    "CREATE TABLE",
		"CREATE_DATABASE": "CREATE DATABASE",
		"DROP_TABLE":      "DROP TABLE",
		"DROP_DATABASE":   "DROP DATABASE",
	},
	MySQL: {
		"SELECT":          "SELECT",
		"INSERT":          "INSERT",
		"UPDATE":          "UPDATE",
		"DELETE":          "DELETE",
		"CREATE_TABLE":    "CREATE TABLE",
		"CREATE_DATABASE": "CREATE DATABASE",
		"DROP_TABLE":      "DROP TABLE",
		"DROP_DATABASE":   "DROP DATABASE",
	},
	MongoDB: {
		"SELECT":          DocFind,
		"INSERT":          DocInsertOne,
		"BULK_INSERT":     DocInsertMany,
		"UPDATE":          DocUpdateMany,
		"DELETE":          DocDeleteMany,
		"CREATE_TABLE":    DocCreateCollection,
		"CREATE_DATABASE": DocCreateDatabase,
		"DROP_TABLE":      DocDropCollection,
		"DROP_DATABASE":   DocDropDatabase,
	},
	Neo4j: {
		"SELECT": "MATCH",
		"INSERT": "CREATE",
		"UPDATE": "MATCH SET",
		"DELETE": "MATCH DELETE",
	},
}

// IsSupportedOperation reports whether backend has a native form for kind
func IsSupportedOperation(backend Backend, kind string) bool {
	_, ok := OperationMap[backend][kind]
	return ok
}
