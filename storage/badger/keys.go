package badger

import (
	"fmt"
)

// Key prefixes for different data types
const (
	indexSpecPrefix     = "idxspec"
	projectRecordPrefix = "prjrec"
)

// makeIndexSpecKey generates the key holding an index's spec.
func makeIndexSpecKey(index string) []byte {
	return []byte(fmt.Sprintf("%s:%s", indexSpecPrefix, index))
}

// makeProjectRecordPrefix generates the key prefix shared by all records of an index.
// Format: prefix:index:
func makeProjectRecordPrefix(index string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", projectRecordPrefix, index))
}

// makeProjectRecordKey generates a key for a project record.
// Format: prefix:index:projectID
func makeProjectRecordKey(index, projectID string) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s", projectRecordPrefix, index, projectID))
}
