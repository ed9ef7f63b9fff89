package importer

import "strings"

// Kind names the record type held by a CSV file.
type Kind string

const (
	KindPatients Kind = "patients"
	KindInvoices Kind = "invoices"
)

// ParseKind accepts "patients" or "invoices" in any case.
func ParseKind(raw string) (Kind, bool) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(raw))); k {
	case KindPatients, KindInvoices:
		return k, true
	default:
		return "", false
	}
}

// field is one logical column with the header spellings seen in clinic exports.
type field struct {
	key      string
	aliases  []string
	required bool
}

// Profile describes the columns of one export layout. Headers are matched
// case-insensitively after trimming.
type Profile struct {
	Kind   Kind
	fields []field
}

var profiles = map[Kind]Profile{
	KindPatients: {
		Kind: KindPatients,
		fields: []field{
			{key: "id", aliases: []string{"patient_id", "id"}, required: true},
			{key: "name", aliases: []string{"name", "patient_name", "pet_name"}, required: true},
			{key: "species", aliases: []string{"species", "type"}},
			{key: "breed", aliases: []string{"breed"}},
			{key: "age", aliases: []string{"age_dob", "age", "dob"}},
			{key: "sex", aliases: []string{"sex", "gender"}},
			{key: "colour", aliases: []string{"color", "colour"}},
			{key: "weight", aliases: []string{"weight"}},
			{key: "owner", aliases: []string{"owner_name", "parent_name", "pet_parent", "owner"}},
			{key: "phone", aliases: []string{"mobile_no", "phone", "mobile"}},
			{key: "email", aliases: []string{"email_id", "email"}},
			{key: "address", aliases: []string{"address"}},
			{key: "created", aliases: []string{"timestamp", "created_at"}},
		},
	},
	KindInvoices: {
		Kind: KindInvoices,
		fields: []field{
			{key: "ref", aliases: []string{"ref", "invoice_ref"}, required: true},
			{key: "date", aliases: []string{"date", "invoice_date"}, required: true},
			{key: "total", aliases: []string{"total", "amount"}, required: true},
			{key: "patient_id", aliases: []string{"patient_id"}},
			{key: "patient_name", aliases: []string{"patient_name", "name"}},
			{key: "patient_type", aliases: []string{"patient_type", "species"}},
			{key: "owner", aliases: []string{"owner_name", "parent_name", "owner"}},
			{key: "phone", aliases: []string{"mobile_no", "phone"}},
			{key: "method", aliases: []string{"payment_type", "method"}},
			{key: "discount", aliases: []string{"final_discount", "discount"}},
			{key: "paid", aliases: []string{"paid_amount", "paid", "amount_paid"}},
			{key: "status", aliases: []string{"status"}},
			{key: "notes", aliases: []string{"notes", "remarks"}},
			{key: "created", aliases: []string{"timestamp", "created_at"}},
		},
	},
}

// columns maps field keys to column positions. Missing optional fields are absent.
type columns map[string]int

// match resolves the profile's fields against a header row. It reports false
// when a required field has no column.
func (p Profile) match(header []string) (columns, bool) {
	index := make(map[string]int, len(header))

	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))
		if _, seen := index[name]; name != "" && !seen {
			index[name] = i
		}
	}

	cols := make(columns)

	for _, f := range p.fields {
		for _, alias := range f.aliases {
			if i, ok := index[alias]; ok {
				cols[f.key] = i
				break
			}
		}

		if _, ok := cols[f.key]; !ok && f.required {
			return nil, false
		}
	}

	return cols, true
}

// get returns the cleaned cell for key, or "" when the column is absent.
func (c columns) get(row []string, key string) string {
	i, ok := c[key]
	if !ok || i >= len(row) {
		return ""
	}

	return clean(row[i])
}

// clean trims a cell and blanks the null markers spreadsheet exports write.
func clean(s string) string {
	s = strings.TrimSpace(s)

	switch strings.ToLower(s) {
	case "null", "none", "nan":
		return ""
	}

	return s
}
