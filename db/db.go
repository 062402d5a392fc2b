package db

import (
	"fmt"

	"dressrental/config"
	"dressrental/models"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func ConnectDB(cfg config.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := Migrate(conn); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate models")
	}
	log.Info().Str("db", cfg.DBName).Msg("database connected")
	return conn
}

func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(&models.Staff{}, &models.Customer{}, &models.Item{}, &models.Order{}); err != nil {
		return err
	}

	// Raw partial indexes are Postgres-only; tests run on sqlite.
	if conn.Dialector.Name() != "postgres" {
		return nil
	}

	// Conflict checks scan only live orders per item.
	if err := conn.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_live_item_range
	  ON %s (item_id, delivery_date, due_date)
	  WHERE status IN ('pending', 'on_course');
	`, models.OrderTable, models.OrderTable)).Error; err != nil {
		return err
	}

	// Upcoming deliveries/returns per day.
	if err := conn.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_live_delivery_day
	  ON %s (delivery_date)
	  WHERE status IN ('pending', 'on_course');
	`, models.OrderTable, models.OrderTable)).Error; err != nil {
		return err
	}

	return nil
}
