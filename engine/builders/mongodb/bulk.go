package mongodb

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson"
)

// Bulk payload forms
const (
	FormBase64 = "VALUES_BASE64"
	FormJSON   = "VALUES_JSON"
)

var (
	ErrNotBase64      = errors.New("payload is not valid base64")
	ErrNotUTF8        = errors.New("decoded payload is not valid UTF-8")
	ErrMalformedJSON  = errors.New("payload is not valid JSON")
	ErrNotDocument    = errors.New("payload must be a JSON object or an array of objects")
	ErrEmptyBulkArray = errors.New("payload array is empty")
)

// Bulk is a decoded payload. Array is set when the payload was a JSON array,
// even one holding a single object.
type Bulk struct {
	Documents []bson.D
	Array     bool
}

// PayloadError reports a bulk insert payload that could not be turned into
// documents
type PayloadError struct {
	Form string
	Err  error
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("invalid %s payload: %v", e.Form, e.Err)
}

func (e *PayloadError) Unwrap() error {
	return e.Err
}

// DecodeBase64Payload decodes standard base64, checks the bytes are UTF-8 and
// parses the JSON within
func DecodeBase64Payload(payload string) (*Bulk, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return nil, &PayloadError{Form: FormBase64, Err: fmt.Errorf("%w: %v", ErrNotBase64, err)}
	}
	if !utf8.Valid(raw) {
		return nil, &PayloadError{Form: FormBase64, Err: ErrNotUTF8}
	}
	return decodeJSONDocuments(FormBase64, string(raw))
}

// DecodeJSONPayload repairs shell escaping (\' then \\) and parses the JSON
func DecodeJSONPayload(payload string) (*Bulk, error) {
	repaired := strings.ReplaceAll(payload, `\'`, `'`)
	repaired = strings.ReplaceAll(repaired, `\\`, `\`)
	return decodeJSONDocuments(FormJSON, repaired)
}

// decodeJSONDocuments parses an object into one document and an array into
// one document per element. Key order is preserved.
func decodeJSONDocuments(form, text string) (*Bulk, error) {
	var wrapper bson.D
	if err := bson.UnmarshalExtJSON([]byte(`{"v":`+text+`}`), false, &wrapper); err != nil {
		return nil, &PayloadError{Form: form, Err: fmt.Errorf("%w: %v", ErrMalformedJSON, err)}
	}
	// Anything past the payload itself would surface as extra keys
	if len(wrapper) != 1 || wrapper[0].Key != "v" {
		return nil, &PayloadError{Form: form, Err: ErrMalformedJSON}
	}

	switch v := wrapper[0].Value.(type) {
	case bson.D:
		return &Bulk{Documents: []bson.D{v}}, nil
	case bson.A:
		if len(v) == 0 {
			return nil, &PayloadError{Form: form, Err: ErrEmptyBulkArray}
		}
		docs := make([]bson.D, len(v))
		for i, elem := range v {
			doc, ok := elem.(bson.D)
			if !ok {
				return nil, &PayloadError{Form: form, Err: fmt.Errorf("%w: element %d is %T", ErrNotDocument, i, elem)}
			}
			docs[i] = doc
		}
		return &Bulk{Documents: docs, Array: true}, nil
	}
	return nil, &PayloadError{Form: form, Err: ErrNotDocument}
}
