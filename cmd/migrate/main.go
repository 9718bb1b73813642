// Package main applies schema migrations for the account and player
// snapshot tables before the game server comes up.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/viper"

	"github.com/rowanvale/lantern/internal/config"
)

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	migrationsDir := flag.String("migrations", "migrations", "path to migration files")
	direction := flag.String("direction", "up", "migration direction: up or down")
	steps := flag.Int("steps", 0, "number of steps (0 = all)")
	flag.Parse()

	if err := run(*configPath, *migrationsDir, *direction, *steps); err != nil {
		log.Fatal(err)
	}
}

func run(configPath, migrationsDir, direction string, steps int) error {
	start := time.Now()

	dsn, err := databaseDSN(configPath)
	if err != nil {
		return err
	}

	m, err := migrate.New("file://"+migrationsDir, dsn)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	defer m.Close()

	switch direction {
	case "up":
		if steps > 0 {
			err = m.Steps(steps)
		} else {
			err = m.Up()
		}
	case "down":
		if steps > 0 {
			err = m.Steps(-steps)
		} else {
			err = m.Down()
		}
	default:
		return fmt.Errorf("invalid direction %q: must be 'up' or 'down'", direction)
	}

	noChange := errors.Is(err, migrate.ErrNoChange)
	if err != nil && !noChange {
		return fmt.Errorf("migration failed: %w", err)
	}

	version, dirty, _ := m.Version()
	if noChange {
		fmt.Printf("schema already current (version=%d dirty=%v) [%s]\n",
			version, dirty, time.Since(start))
		return nil
	}
	fmt.Printf("migrated %s to version=%d dirty=%v [%s]\n",
		direction, version, dirty, time.Since(start))
	return nil
}

// databaseDSN pulls just the database block out of the server config,
// so the migrator and the game server can never disagree about which
// database they talk to.
func databaseDSN(configPath string) (string, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return "", fmt.Errorf("reading config: %w", err)
	}

	sub := v.Sub("database")
	if sub == nil {
		return "", fmt.Errorf("config %s has no database section", configPath)
	}

	var dbCfg config.DatabaseConfig
	if err := sub.Unmarshal(&dbCfg); err != nil {
		return "", fmt.Errorf("parsing database config: %w", err)
	}
	return dbCfg.DSN(), nil
}
