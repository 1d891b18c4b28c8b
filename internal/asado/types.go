package asado

import (
	"time"

	"github.com/mauv0809/la-canchita/internal/league"
)

// Asado is an attendance event: who showed up, who hosted, who ran the
// grill. Immutable once created except via delete.
type Asado struct {
	ID               string    `json:"id"`
	SeasonID         string    `json:"season_id"`
	Date             time.Time `json:"date"`
	Venue            string    `json:"venue,omitempty"`
	PresentPlayerIDs []string  `json:"present_player_ids"`
	HostPlayerID     string    `json:"host_player_id,omitempty"`
	AsadorPlayerID   string    `json:"asador_player_id,omitempty"`
	CreatedBy        string    `json:"created_by,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewAsado is the input for recording an attendance event.
type NewAsado struct {
	Date             time.Time `json:"date"`
	Venue            string    `json:"venue,omitempty"`
	PresentPlayerIDs []string  `json:"present_player_ids"`
	HostPlayerID     string    `json:"host_player_id,omitempty"`
	AsadorPlayerID   string    `json:"asador_player_id,omitempty"`
	CreatedBy        string    `json:"created_by,omitempty"`
}

// Validate checks the presence list and host/asador membership before
// anything is written.
func (na NewAsado) Validate() error {
	if len(na.PresentPlayerIDs) == 0 {
		return league.Validationf("at least one player must be present")
	}
	present := make(map[string]struct{}, len(na.PresentPlayerIDs))
	for _, id := range na.PresentPlayerIDs {
		present[id] = struct{}{}
	}
	if na.HostPlayerID != "" {
		if _, ok := present[na.HostPlayerID]; !ok {
			return league.Validationf("host %s must be among the present players", na.HostPlayerID)
		}
	}
	if na.AsadorPlayerID != "" {
		if _, ok := present[na.AsadorPlayerID]; !ok {
			return league.Validationf("asador %s must be among the present players", na.AsadorPlayerID)
		}
	}
	return nil
}

// AsadoStanding is the materialized attendance aggregate for one player.
// A zero LastSeenAt means the player was never present.
type AsadoStanding struct {
	Points     int       `json:"points"`
	Attended   int       `json:"attended"`
	Hosted     int       `json:"hosted"`
	Asador     int       `json:"asador"`
	LastSeenAt time.Time `json:"last_seen_at,omitzero"`
	UpdatedAt  time.Time `json:"updated_at,omitzero"`
}
