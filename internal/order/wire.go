package order

import (
	"database/sql"

	"go.uber.org/zap"

	"vitrine/internal/config"
	"vitrine/internal/order/controller"
	"vitrine/internal/order/repository"
	"vitrine/internal/order/usecase"
)

// NewModule wires the order store, use case and controller. db is only
// consulted when the configured driver is mysql.
func NewModule(cfg config.StorageConfig, db *sql.DB, forwarder usecase.Forwarder, logger *zap.Logger) *controller.OrderController {
	var store usecase.OrderStore
	if cfg.Driver == "mysql" {
		store = repository.NewMySQLStore(db)
	} else {
		store = repository.NewFileStore(cfg.DataFile)
	}

	uc := usecase.NewOrderUseCase(store, forwarder, logger)
	return controller.NewOrderController(uc, logger)
}
