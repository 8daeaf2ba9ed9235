package approvals

import (
	"vrisa/internal/domain"
)

// Queue is the pending-items view for an approver. Only the tabs the
// caller's role can act on are populated.
type Queue struct {
	Institutions []domain.Institution       `json:"institutions,omitempty"`
	Stations     []StationItem              `json:"stations,omitempty"`
	Researchers  []domain.ResearcherRequest `json:"researchers,omitempty"`
}

// StationItem decorates a station with the advisory approve gate. The
// backend remains the authority; this only drives the disabled button.
type StationItem struct {
	domain.Station
	ApproveEnabled bool   `json:"approve_enabled"`
	DisabledReason string `json:"disabled_reason,omitempty"`
}

const noSensorsReason = "This station has no registered sensors. Add a sensor or use the override confirmation to approve anyway."

func newStationItem(st domain.Station) StationItem {
	item := StationItem{Station: st, ApproveEnabled: len(st.Sensors) > 0}
	if !item.ApproveEnabled {
		item.DisabledReason = noSensorsReason
	}
	return item
}

// Tab describes one column set of the approvals panel.
type Tab struct {
	Key     ItemType `json:"key"`
	Title   string   `json:"title"`
	Columns []string `json:"columns"`
}

var allTabs = map[ItemType]Tab{
	ItemInstitution: {
		Key:     ItemInstitution,
		Title:   "Instituciones",
		Columns: []string{"name", "address", "colors", "created_at"},
	},
	ItemStation: {
		Key:     ItemStation,
		Title:   "Estaciones",
		Columns: []string{"name", "latitude", "longitude", "institution_id", "sensors"},
	},
	ItemResearcher: {
		Key:     ItemResearcher,
		Title:   "Investigadores",
		Columns: []string{"full_name", "document_type", "document_number", "affiliated_institution"},
	},
}

// TabsFor lists the tabs a role may act on. Super admins see everything;
// institution heads only review stations of their own institution.
func TabsFor(role domain.Role) []Tab {
	switch role {
	case domain.RoleSuperAdmin:
		return []Tab{allTabs[ItemInstitution], allTabs[ItemStation], allTabs[ItemResearcher]}
	case domain.RoleInstitutionHead:
		return []Tab{allTabs[ItemStation]}
	}
	return nil
}

func roleMayAct(role domain.Role, typ ItemType) bool {
	for _, tab := range TabsFor(role) {
		if tab.Key == typ {
			return true
		}
	}
	return false
}
