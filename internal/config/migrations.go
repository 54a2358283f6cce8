package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"dechets_ko/internal/models"
)

// Migrate runs the versioned schema migrations.
func Migrate(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20250110_create_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(
					&models.User{}, &models.Team{}, &models.CollectionPoint{},
					&models.Truck{}, &models.TruckLocation{}, &models.Report{},
					&models.Schedule{}, &models.ScheduleRoute{},
					&models.Incident{}, &models.Statistics{},
				)
			},
		},
		{
			// At most one team per leader, enforced by the store so two
			// concurrent assignments cannot both slip past the
			// application-level check.
			ID: "20250112_team_leader_unique",
			Migrate: func(tx *gorm.DB) error {
				return tx.Exec(
					"CREATE UNIQUE INDEX IF NOT EXISTS uniq_teams_leader ON teams(leader_id) " +
						"WHERE leader_id IS NOT NULL AND deleted_at IS NULL",
				).Error
			},
		},
	})
	return m.Migrate()
}
