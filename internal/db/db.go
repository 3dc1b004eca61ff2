package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/meetingdesk/meeting-scheduler/internal/config"
	"github.com/meetingdesk/meeting-scheduler/internal/models"
)

// overlapConstraintDDL closes the check-then-write race: two concurrent
// writers can both pass the application-level conflict scan, but only one
// insert survives for an overlapping active interval in the same room.
// Meeting timestamps migrate as timestamptz, so the range type must be
// tstzrange; tsrange has no timestamptz overload and the DDL would fail.
const overlapConstraintDDL = `
    DO $$
    BEGIN
        IF NOT EXISTS (
            SELECT 1 FROM pg_constraint WHERE conname = 'meetings_room_no_overlap'
        ) THEN
            ALTER TABLE meetings
            ADD CONSTRAINT meetings_room_no_overlap
            EXCLUDE USING gist (
                room_id WITH =,
                tstzrange(start_time, end_time) WITH &&
            )
            WHERE (room_id IS NOT NULL AND status NOT IN ('CANCELLED', 'REJECTED'));
        END IF;
    END $$
`

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.MeetingRoom{},
		&models.Visitor{},
		&models.Meeting{},
		&models.RecurringMeetingRule{},
		&models.VisitorVisit{},
		&models.ActivityLog{},
		&models.Report{},
		&models.ReportExecution{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Without the constraint the conflict scan alone cannot stop two
	// concurrent inserts, so a failed install is fatal, not a warning.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		log.Fatalf("failed to install btree_gist extension: %v", err)
	}
	if err := db.Exec(overlapConstraintDDL).Error; err != nil {
		log.Fatalf("failed to install room overlap constraint: %v", err)
	}

	return db
}
