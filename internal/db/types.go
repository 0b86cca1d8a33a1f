package db

import (
	"time"

	"github.com/google/uuid"
)

// AliasRecord is a row in client_name_aliases. The display name is the
// natural key; many display names may map to one canonical name. Rows are
// never deleted; is_active=false soft-disables a mapping without losing
// history.
type AliasRecord struct {
	DisplayName   string    `json:"display_name"`
	CanonicalName string    `json:"canonical_name"`
	Description   string    `json:"description,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Client represents a canonical client identity
type Client struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	NameNormalized string    `json:"name_normalized"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Fact tables carrying a raw client_name and a nullable client_id reference.
// Each was populated from an independent export with its own naming habits,
// which is why rows need resolution before they can be joined.
const (
	TableNPSResponses       = "nps_responses"
	TableAgingAccounts      = "aging_accounts"
	TableRevenueDetail      = "revenue_detail"
	TableSegmentationEvents = "segmentation_events"
	TableUnifiedMeetings    = "unified_meetings"
	TableActions            = "actions"
)

// FactTables lists every backfillable fact table in processing order.
var FactTables = []string{
	TableNPSResponses,
	TableAgingAccounts,
	TableRevenueDetail,
	TableSegmentationEvents,
	TableUnifiedMeetings,
	TableActions,
}

// IsFactTable reports whether name is a known fact table. Table names are
// interpolated into SQL, so everything must pass this allowlist first.
func IsFactTable(name string) bool {
	for _, t := range FactTables {
		if t == name {
			return true
		}
	}
	return false
}

// NameCount pairs a raw client name with the number of rows carrying it.
type NameCount struct {
	ClientName string `json:"client_name"`
	RowCount   int64  `json:"row_count"`
}

// NPSClientSummary aggregates NPS responses for one client in one period.
// The score is the classic promoters-minus-detractors percentage.
type NPSClientSummary struct {
	ClientName    string  `json:"client_name"`
	Period        string  `json:"period"`
	ResponseCount int64   `json:"response_count"`
	Promoters     int64   `json:"promoters"`
	Detractors    int64   `json:"detractors"`
	NPSScore      float64 `json:"nps_score"`
	AvgScore      float64 `json:"avg_score"`
}
