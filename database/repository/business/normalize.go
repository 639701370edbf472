package businessRepo

import (
	"agendo/config"
	"agendo/models"
	"agendo/utils"

	"go.uber.org/zap"
)

// NormalizeWorkingHours converts a stored week schedule into the single
// shifts-list shape the engine works with. Older business documents
// carry a lone open/close pair per day; both shapes collapse here so
// nothing downstream branches on which one was stored. A nil schedule
// means the business never restricted its hours.
func NormalizeWorkingHours(stored *models.StoredWeekSchedule) *models.WeekSchedule {
	if stored == nil {
		return models.AlwaysOpen()
	}

	logger := utils.GetLogger()
	var week models.WeekSchedule
	for i, day := range stored.Days {
		if !day.IsOpen {
			week.Days[i] = models.DaySchedule{IsOpen: false}
			continue
		}

		shifts := day.Shifts
		if len(shifts) == 0 && day.Open != nil && day.Close != nil {
			// Legacy single-pair shape.
			shifts = []models.Shift{{Open: *day.Open, Close: *day.Close}}
		}

		var valid []models.Shift
		for _, s := range shifts {
			if !s.Valid() {
				logger.Warn("skipping malformed shift",
					zap.Int("weekday", i), zap.Int("open", s.Open), zap.Int("close", s.Close))
				continue
			}
			valid = append(valid, s)
		}
		week.Days[i] = models.DaySchedule{IsOpen: len(valid) > 0, Shifts: valid}
	}
	return &week
}

// EffectiveGridConfig applies configured defaults to a possibly-missing
// grid config.
func EffectiveGridConfig(stored *models.GridConfig) models.GridConfig {
	cfg := models.GridConfig{
		SlotSizeMinutes: config.AppConfig.DefaultSlotSize,
		BufferMinutes:   config.AppConfig.DefaultBufferMinutes,
	}
	if cfg.SlotSizeMinutes <= 0 {
		cfg.SlotSizeMinutes = models.DefaultSlotSizeMinutes
	}
	if stored != nil {
		if stored.SlotSizeMinutes > 0 {
			cfg.SlotSizeMinutes = stored.SlotSizeMinutes
		}
		if stored.BufferMinutes >= 0 {
			cfg.BufferMinutes = stored.BufferMinutes
		}
	}
	return cfg
}
