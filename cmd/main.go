package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coffee_roaster/internal/handlers"
	"coffee_roaster/internal/hardware"
	"coffee_roaster/internal/logger"
	"coffee_roaster/internal/repository"
	"coffee_roaster/internal/repository/db"
	"coffee_roaster/internal/roaster"
	"coffee_roaster/internal/server"
	"coffee_roaster/internal/service"
	"coffee_roaster/internal/telemetry"

	"github.com/spf13/viper"
)

func main() {
	// load config.yml
	if err := loadConfig(); err != nil {
		logger.Get(logger.InfoLevel, "").Fatalw("error reading config", "err", err)
	}

	log := logger.Get(viper.GetString("log_level"), viper.GetString("log_file"))

	// open DB
	database, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := database.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// core wiring
	sim := roaster.NewSimulator(roaster.SimulatorConfig{
		Ambient: viper.GetFloat64("roast.ambient"),
		MaxTemp: viper.GetFloat64("roast.max_temp"),
	})
	session := roaster.NewSession()
	device := openHardware(log)

	mon := roaster.NewMonitor(roaster.MonitorConfig{
		Session:   session,
		Simulator: sim,
		Device:    device,
		Interval:  time.Duration(viper.GetInt("roast.tick_ms")) * time.Millisecond,
		HeatLevel: viper.GetInt("roast.heat_level"),
		Log:       log,
	})

	pub := openTelemetry(log)
	if pub != nil {
		mon.OnTemperature(func(t float64) {
			if perr := pub.PublishTemperature(t); perr != nil {
				log.Debugw("telemetry publish failed", "err", perr)
			}
		})
		mon.OnFirstCrack(func() { publishCrack(pub, session, "first", log) })
		mon.OnSecondCrack(func() { publishCrack(pub, session, "second", log) })
		defer func() { _ = pub.Close() }()
	}

	reconciler := roaster.NewStateReconciler(session, sim, mon, log)

	repos := repository.NewRepository(database)
	services := service.NewService(service.Deps{
		Repos:      repos,
		Session:    session,
		Simulator:  sim,
		Monitor:    mon,
		Reconciler: reconciler,
		Log:        log,
		BaseCtx:    ctx,
	})
	apiHandler := handlers.NewHandler(services, log)

	// the monitoring loop runs for the process lifetime; sampling is
	// gated by the session's activity flag
	mon.Start(ctx)

	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	waitForShutdown(cancel, srv, mon, device, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "roaster.db")
		dbPath = "roaster.db"
	}
	return db.InitDB(dbPath)
}

// openHardware opens the probe/heater adapter when enabled. Any
// failure drops the process into pure simulation mode.
func openHardware(log *logger.Logger) hardware.Device {
	if !viper.GetBool("hardware.enabled") {
		log.Infow("hardware disabled, running in simulation mode")
		return nil
	}
	dev, err := hardware.Open(hardware.Config{
		SensorPath: viper.GetString("hardware.sensor_path"),
		Chip:       viper.GetString("hardware.chip"),
		RelayLine:  viper.GetInt("hardware.relay_line"),
	})
	if err != nil {
		log.Warnw("hardware unavailable, falling back to simulation", "err", err)
		return nil
	}
	log.Infow("hardware attached", "sensor", viper.GetString("hardware.sensor_path"))
	return dev
}

// openTelemetry connects the MQTT publisher when enabled. Telemetry is
// best-effort; a broker failure only disables publishing.
func openTelemetry(log *logger.Logger) telemetry.Publisher {
	if !viper.GetBool("mqtt.enabled") {
		return nil
	}
	pub, err := telemetry.NewMQTTPublisher(
		viper.GetString("mqtt.broker"),
		viper.GetString("mqtt.temperature_topic"),
		viper.GetString("mqtt.events_topic"),
	)
	if err != nil {
		log.Warnw("mqtt broker unavailable, telemetry disabled", "err", err)
		return nil
	}
	log.Infow("telemetry connected", "broker", viper.GetString("mqtt.broker"))
	return pub
}

func publishCrack(pub telemetry.Publisher, session *roaster.Session, which string, log *logger.Logger) {
	cs := session.Crack()
	elapsed := 0.0
	switch {
	case which == "first" && cs.FirstTime != nil:
		elapsed = *cs.FirstTime
	case which == "second" && cs.SecondTime != nil:
		elapsed = *cs.SecondTime
	}
	if err := pub.PublishCrack(which, elapsed); err != nil {
		log.Debugw("telemetry crack publish failed", "crack", which, "err", err)
	}
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8000"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs
// graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, mon *roaster.Monitor, device hardware.Device, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()
	mon.Stop()

	if device != nil {
		if err := device.Close(); err != nil {
			log.Warnw("hardware close failed", "err", err)
		}
	}

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
