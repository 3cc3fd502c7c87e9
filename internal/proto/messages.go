package proto

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"time"

	"google.golang.org/protobuf/types/known/structpb"
)

var ErrMalformed = errors.New("malformed message")

// Credentials is the payload of Register and Login. Login leaves Salt empty.
type Credentials struct {
	Username string
	Salt     []byte
	Verifier []byte
}

const (
	fieldUsername  = "username"
	fieldSalt      = "salt"
	fieldVerifier  = "verifier"
	fieldName      = "name"
	fieldSize      = "size"
	fieldVersion   = "version"
	fieldUpdatedAt = "updated_at"
)

// Struct encodes the credentials for the wire.
func (c Credentials) Struct() *structpb.Struct {
	fields := map[string]*structpb.Value{
		fieldUsername: structpb.NewStringValue(c.Username),
		fieldVerifier: structpb.NewStringValue(base64.StdEncoding.EncodeToString(c.Verifier)),
	}
	if len(c.Salt) > 0 {
		fields[fieldSalt] = structpb.NewStringValue(base64.StdEncoding.EncodeToString(c.Salt))
	}
	return &structpb.Struct{Fields: fields}
}

// CredentialsFromStruct decodes credentials. Username and verifier are
// mandatory; salt is optional.
func CredentialsFromStruct(s *structpb.Struct) (Credentials, error) {
	var c Credentials

	username, err := stringField(s, fieldUsername, true)
	if err != nil {
		return c, err
	}
	c.Username = username

	if c.Verifier, err = bytesField(s, fieldVerifier, true); err != nil {
		return c, err
	}
	if c.Salt, err = bytesField(s, fieldSalt, false); err != nil {
		return c, err
	}

	return c, nil
}

// ObjectEntry is one element of a List reply.
type ObjectEntry struct {
	Name      string
	Size      int64
	Version   int64
	UpdatedAt time.Time
}

// EncodeObjects builds the List reply. Size and version travel as decimal
// strings; structpb numbers are float64 and lose precision above 2^53.
func EncodeObjects(entries []ObjectEntry) *structpb.ListValue {
	values := make([]*structpb.Value, 0, len(entries))
	for _, e := range entries {
		values = append(values, structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
			fieldName:      structpb.NewStringValue(e.Name),
			fieldSize:      structpb.NewStringValue(strconv.FormatInt(e.Size, 10)),
			fieldVersion:   structpb.NewStringValue(strconv.FormatInt(e.Version, 10)),
			fieldUpdatedAt: structpb.NewStringValue(e.UpdatedAt.UTC().Format(time.RFC3339Nano)),
		}}))
	}
	return &structpb.ListValue{Values: values}
}

// DecodeObjects parses a List reply.
func DecodeObjects(list *structpb.ListValue) ([]ObjectEntry, error) {
	entries := make([]ObjectEntry, 0, len(list.GetValues()))

	for i, v := range list.GetValues() {
		s := v.GetStructValue()
		if s == nil {
			return nil, fmt.Errorf("%w: list item %d is not an object", ErrMalformed, i)
		}

		name, err := stringField(s, fieldName, true)
		if err != nil {
			return nil, err
		}
		ts, err := stringField(s, fieldUpdatedAt, false)
		if err != nil {
			return nil, err
		}

		size, err := int64Field(s, fieldSize)
		if err != nil {
			return nil, err
		}
		version, err := int64Field(s, fieldVersion)
		if err != nil {
			return nil, err
		}

		e := ObjectEntry{Name: name, Size: size, Version: version}
		if ts != "" {
			if e.UpdatedAt, err = time.Parse(time.RFC3339Nano, ts); err != nil {
				return nil, fmt.Errorf("%w: %s: %w", ErrMalformed, fieldUpdatedAt, err)
			}
		}
		entries = append(entries, e)
	}

	return entries, nil
}

func stringField(s *structpb.Struct, name string, required bool) (string, error) {
	v, ok := s.GetFields()[name]
	if !ok {
		if required {
			return "", fmt.Errorf("%w: missing %s", ErrMalformed, name)
		}
		return "", nil
	}
	sv, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", fmt.Errorf("%w: %s is not a string", ErrMalformed, name)
	}
	return sv.StringValue, nil
}

func int64Field(s *structpb.Struct, name string) (int64, error) {
	str, err := stringField(s, name, false)
	if err != nil || str == "" {
		return 0, err
	}
	n, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrMalformed, name, err)
	}
	return n, nil
}

func bytesField(s *structpb.Struct, name string, required bool) ([]byte, error) {
	str, err := stringField(s, name, required)
	if err != nil || str == "" {
		return nil, err
	}
	b, err := base64.StdEncoding.DecodeString(str)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformed, name, err)
	}
	return b, nil
}
