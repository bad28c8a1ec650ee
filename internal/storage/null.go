package storage

import "database/sql"

// Tool inputs use empty string / zero as the "absent" sentinel. These
// helpers normalize sentinels to SQL NULL at the storage boundary, the only
// place where "not provided" and "explicitly empty" need distinguishing.

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullInt(i int) interface{} {
	if i == 0 {
		return nil
	}
	return i
}

// Scan targets come back as sql.Null* values; records expose them as
// pointers so JSON output carries real nulls.

func strPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

func intPtr(ni sql.NullInt64) *int {
	if !ni.Valid {
		return nil
	}
	v := int(ni.Int64)
	return &v
}
