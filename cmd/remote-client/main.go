// cmd/remote-client/main.go
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Kentucky-Fried-Circuits/93-0000020-Remote-Client/internal/catalog"
	"github.com/Kentucky-Fried-Circuits/93-0000020-Remote-Client/internal/config"
	"github.com/Kentucky-Fried-Circuits/93-0000020-Remote-Client/internal/logger"
	mqttsink "github.com/Kentucky-Fried-Circuits/93-0000020-Remote-Client/internal/logger/mqtt"
	"github.com/Kentucky-Fried-Circuits/93-0000020-Remote-Client/internal/script"
	"github.com/Kentucky-Fried-Circuits/93-0000020-Remote-Client/internal/session"
	"github.com/Kentucky-Fried-Circuits/93-0000020-Remote-Client/internal/transport"
)

func main() {
	os.Exit(run())
}

// run holds the real main so deferred cleanup (sink flush, disconnect)
// happens before the exit code is reported.
func run() int {
	if len(os.Args) < 2 {
		log.Fatal("usage: remote-client <config.yaml> [script.txt]")
	}

	cfgPath := os.Args[1]
	var scriptPath string
	if len(os.Args) > 2 {
		scriptPath = os.Args[2]
	}

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}
	config.Normalize(cfg)

	client := cfg.Client

	cat, err := catalog.ForProduct(client.Product)
	if err != nil {
		log.Fatalf("catalog: %v", err)
	}

	// --------------------
	// Resolve port + connect
	// --------------------

	port := client.Connection.Port
	if port == "auto" {
		port, err = transport.Discover()
		if err != nil {
			log.Fatalf("port discovery failed: %v", err)
		}
		log.Printf("found serial adapter at %s", port)
	}

	sess, err := session.New(session.Config{
		Port:        port,
		BaudRate:    client.Connection.BaudRate,
		NodeAddress: client.Connection.NodeAddress,
		Timeout:     time.Duration(client.Connection.TimeoutMs) * time.Millisecond,
		RetryCount:  client.Connection.RetryCount,
		Checksum:    client.Connection.Checksum,
	}, cat)
	if err != nil {
		log.Fatalf("session: %v", err)
	}

	log.Printf("connecting to %s at %d baud, node %d",
		port, client.Connection.BaudRate, client.Connection.NodeAddress)
	if err := sess.Connect(); err != nil {
		log.Fatalf("connect failed: %v", err)
	}
	defer sess.Disconnect()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --------------------
	// Data logger (optional)
	// --------------------

	var lg *logger.Logger
	if client.Logging != nil {
		sink, closeSinks, err := buildSinks(client.Logging)
		if err != nil {
			log.Fatalf("logger sinks failed: %v", err)
		}
		defer closeSinks()

		lg, err = logger.New(
			sess,
			client.Logging.Registers,
			time.Duration(client.Logging.IntervalMs)*time.Millisecond,
			sink,
		)
		if err != nil {
			log.Fatalf("logger build failed: %v", err)
		}
		if err := lg.Start(); err != nil {
			log.Fatalf("logger start failed: %v", err)
		}
		defer lg.Stop()
		log.Printf("logging %d registers every %dms",
			len(client.Logging.Registers), client.Logging.IntervalMs)
	}

	// --------------------
	// Script run (optional)
	// --------------------

	if scriptPath != "" {
		return runScript(ctx, sess, scriptPath, lg)
	}

	if lg == nil {
		log.Fatal("nothing to do: no script argument and no logging config")
	}

	<-ctx.Done()
	log.Print("stopping")
	return 0
}

// runScript parses and executes one script file and returns the process
// exit code for its outcome.
func runScript(ctx context.Context, sess *session.Session, path string, lg *logger.Logger) int {
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("script open failed: %v", err)
	}
	sc, err := script.Parse(f)
	f.Close()
	if err != nil {
		var serr *script.SyntaxError
		if errors.As(err, &serr) {
			log.Fatalf("script rejected: %v", serr)
		}
		log.Fatalf("script parse failed: %v", err)
	}

	rep := script.Run(ctx, sess, sc)

	for _, step := range rep.Steps {
		log.Printf("step %d [%s] %s: %s", step.Index+1, step.Verb, step.Outcome, step.Message)
	}
	if rep.Aborted {
		log.Printf("run aborted after %d of %d steps", len(rep.Steps), len(sc.Steps))
	}
	log.Printf("overall: %s", rep.Outcome)

	// Let an in-flight logger tick finish before the process exits.
	if lg != nil {
		lg.Stop()
	}

	switch rep.Outcome {
	case script.Pass:
		return 0
	case script.Fail:
		return 1
	default:
		return 2
	}
}

// buildSinks assembles the configured sink set behind one Sink.
func buildSinks(cfg *config.LoggingConfig) (logger.Sink, func(), error) {
	var sinks []logger.Sink

	if cfg.CSVPath != "" {
		s, err := logger.NewCSVSink(cfg.CSVPath, cfg.Registers)
		if err != nil {
			return nil, nil, err
		}
		sinks = append(sinks, s)
	}

	if cfg.MQTT != nil {
		s, err := mqttsink.NewSink(mqttsink.Config{
			Broker:      cfg.MQTT.Broker,
			ClientID:    cfg.MQTT.ClientID,
			AccessToken: cfg.MQTT.AccessToken,
			Topic:       cfg.MQTT.Topic,
		}, cfg.Registers)
		if err != nil {
			closeAll(sinks)
			return nil, nil, err
		}
		sinks = append(sinks, s)
	}

	multi := multiSink(sinks)
	return multi, func() { closeAll(sinks) }, nil
}

func closeAll(sinks []logger.Sink) {
	for _, s := range sinks {
		if err := s.Close(); err != nil {
			log.Printf("sink close failed: %v", err)
		}
	}
}

// multiSink fans one row out to every configured sink. A failing sink
// does not starve the others.
type multiSink []logger.Sink

func (m multiSink) Write(row logger.Row) error {
	var last error
	for _, s := range m {
		if err := s.Write(row); err != nil {
			last = err
		}
	}
	return last
}

func (m multiSink) Close() error { return nil }
