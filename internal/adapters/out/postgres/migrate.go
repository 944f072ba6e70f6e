package postgres

import (
	"fmt"

	"hubflow/internal/adapters/out/postgres/hubrepo"
	"hubflow/internal/adapters/out/postgres/notificationrepo"
	"hubflow/internal/adapters/out/postgres/orderrepo"
	"hubflow/internal/adapters/out/postgres/outboxrepo"
	"hubflow/internal/adapters/out/postgres/taskrepo"

	"gorm.io/gorm"
)

// Tables lists every table owned by the service, for TRUNCATE in tests and tooling.
var Tables = []string{"orders", "hubs", "notifications", "outbox_messages", "scheduled_tasks"}

// Migrate creates or updates the schema. At most one hub per district may be
// active; GORM tags cannot express a partial index, so it is created by hand.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&hubrepo.HubDTO{},
		&notificationrepo.NotificationDTO{},
		&outboxrepo.MessageDTO{},
		&taskrepo.TaskDTO{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	stmt := fmt.Sprintf(
		"CREATE UNIQUE INDEX IF NOT EXISTS %s ON hubs (district) WHERE status = 'active'",
		hubrepo.ActiveDistrictIndex,
	)
	if err := db.Exec(stmt).Error; err != nil {
		return fmt.Errorf("create %s: %w", hubrepo.ActiveDistrictIndex, err)
	}
	return nil
}
