package activity

import (
	"github.com/goliatone/go-masker"
	"github.com/goliatone/go-phonebook/pkg/types"
)

// ContactMask is the go-masker tag applied to contact details.
const ContactMask = "filled4"

// contactKeys lists, per object type, the payload keys that carry contact
// details of a member.
var contactKeys = map[string][]string{
	ObjectProfile:         {"email", "previous_email"},
	ObjectExternalAccount: {"identifier"},
}

// Sanitizer hides contact details in activity payloads before they reach
// feed readers.
type Sanitizer struct {
	mask *masker.Masker
}

// NewSanitizer builds a sanitizer on mask, or on masker.Default when nil.
func NewSanitizer(mask *masker.Masker) Sanitizer {
	if mask == nil {
		mask = masker.Default
	}
	return Sanitizer{mask: mask}
}

// Record returns a copy of record with its contact details masked.
// Identifiers of public accounts are left readable since the directory
// already shows them. Values that cannot be masked are dropped.
func (s Sanitizer) Record(record types.ActivityRecord) types.ActivityRecord {
	if len(record.Data) == 0 {
		return record
	}
	data := cloneMap(record.Data)
	for _, key := range maskedKeys(record) {
		value, ok := data[key]
		if !ok {
			continue
		}
		masked, ok := s.maskValue(value)
		if !ok {
			delete(data, key)
			continue
		}
		data[key] = masked
	}
	record.Data = data
	return record
}

// Records masks every record of the slice.
func (s Sanitizer) Records(records []types.ActivityRecord) []types.ActivityRecord {
	if len(records) == 0 {
		return records
	}
	out := make([]types.ActivityRecord, 0, len(records))
	for _, record := range records {
		out = append(out, s.Record(record))
	}
	return out
}

func (s Sanitizer) maskValue(value any) (string, bool) {
	str, ok := value.(string)
	if !ok || s.mask == nil {
		return "", false
	}
	masked, err := s.mask.String(ContactMask, str)
	if err != nil {
		return "", false
	}
	return masked, true
}

func maskedKeys(record types.ActivityRecord) []string {
	switch record.ObjectType {
	case ObjectExternalAccount:
		if privacyOf(record.Data) == types.PrivacyPublic {
			return nil
		}
		return contactKeys[ObjectExternalAccount]
	case ObjectProfile:
		return contactKeys[ObjectProfile]
	}
	return append(append([]string(nil), contactKeys[ObjectProfile]...), contactKeys[ObjectExternalAccount]...)
}

// privacyOf reads the privacy level stored with an account entry. Payloads
// read back from JSON carry numbers as float64.
func privacyOf(data map[string]any) types.PrivacyLevel {
	switch v := data["privacy"].(type) {
	case int:
		return types.PrivacyLevel(v)
	case int64:
		return types.PrivacyLevel(v)
	case float64:
		return types.PrivacyLevel(int(v))
	case types.PrivacyLevel:
		return v
	}
	return 0
}
