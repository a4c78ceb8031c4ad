package seasonality

import (
	"time"

	"relatorios/internal"
	"relatorios/internal/storage"
)

// Panel answers supply-level lookups against the cached reference table.
type Panel struct {
	db          *storage.DB
	alertLevels map[string]struct{}
}

func NewPanel(db *storage.DB, alertLevels []string) *Panel {
	levels := make(map[string]struct{}, len(alertLevels))
	for _, l := range alertLevels {
		levels[l] = struct{}{}
	}
	return &Panel{db: db, alertLevels: levels}
}

// AlertsFor returns one alert per code whose reference row tags the month
// of `when` with a restricted supply level. Codes without a reference row
// produce nothing.
func (p *Panel) AlertsFor(codes []string, when time.Time) ([]internal.SupplyAlert, error) {
	month := int(when.Month()) - 1
	seen := map[string]struct{}{}
	var out []internal.SupplyAlert

	for _, code := range codes {
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}

		row, err := p.db.GetSeasonalityByInternalCode(code)
		if err != nil {
			return nil, err
		}
		if row == nil {
			continue
		}
		level := row.Months[month]
		if _, restricted := p.alertLevels[level]; !restricted {
			continue
		}
		out = append(out, internal.SupplyAlert{
			InternalCode: row.InternalCode,
			ClientSpec:   row.ClientSpec,
			Level:        level,
		})
	}
	return out, nil
}
