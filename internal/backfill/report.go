package backfill

// UnresolvedName is a raw name no rule could map, with the number of fact
// rows waiting on it.
type UnresolvedName struct {
	ClientName string `json:"client_name"`
	RowCount   int64  `json:"row_count"`
}

// AmbiguousName is a raw name that matched more than one canonical identity.
// The candidates are listed so the operator can record the correct alias.
type AmbiguousName struct {
	ClientName string   `json:"client_name"`
	RowCount   int64    `json:"row_count"`
	Candidates []string `json:"candidates"`
}

// Report summarizes one table's backfill pass.
type Report struct {
	Table         string `json:"table"`
	DryRun        bool   `json:"dry_run,omitempty"`
	DistinctNames int    `json:"distinct_names"`
	RowsScanned   int64  `json:"rows_scanned"`
	Resolved      int    `json:"resolved"`
	RowsLinked    int64  `json:"rows_linked"`
	// Names needing operator triage. MissingClients are resolvable names
	// whose canonical identity has no clients row yet.
	Unresolved     []UnresolvedName `json:"unresolved,omitempty"`
	Ambiguous      []AmbiguousName  `json:"ambiguous,omitempty"`
	MissingClients []UnresolvedName `json:"missing_clients,omitempty"`
}

// Clean reports whether the pass left nothing for the operator to triage.
func (r *Report) Clean() bool {
	return len(r.Unresolved) == 0 && len(r.Ambiguous) == 0 && len(r.MissingClients) == 0
}
