// Command karel serves and runs Karel grid worlds.
//
// It has four subcommands:
//  1. "serve" – runs the HTTP server exposing the REST API, WebSocket
//     watching, and an /mcp HTTP endpoint
//  2. "mcp" – runs an MCP stdio server for AI agent clients
//  3. "run" – executes a program file against a world document locally
//  4. "validate" – checks world documents without running anything
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/karelgrid/karel/api"
	"github.com/karelgrid/karel/service"
	"github.com/karelgrid/karel/session"
	"github.com/karelgrid/karel/transport/mcp"
	"github.com/karelgrid/karel/transport/websocket"
	"github.com/karelgrid/karel/world/program"
	"github.com/karelgrid/karel/worldfile"
)

const (
	Version = "1.0.0"
	AppName = "Karel Grid World"
)

func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	} else {
		log.Println("Loaded environment variables from .env file")
	}

	cmd := &cli.Command{
		Name:    "karel",
		Usage:   "serve and run Karel grid worlds",
		Version: Version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("debug") {
				log.SetFlags(log.LstdFlags | log.Lshortfile)
			} else {
				log.SetFlags(log.LstdFlags)
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			serveCommand(),
			mcpCommand(),
			runCommand(),
			validateCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP server with REST API, WebSocket, and MCP endpoint",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Value: "localhost",
				Usage: "HTTP server host",
			},
			&cli.IntFlag{
				Name:  "port",
				Value: 8080,
				Usage: "HTTP server port",
			},
			&cli.StringFlag{
				Name:    "worlds-dir",
				Value:   "worlds",
				Usage:   "directory containing world documents",
				Sources: cli.EnvVars("WORLDS_DIR"),
			},
			&cli.StringFlag{
				Name:    "sessions-dir",
				Value:   "sessions",
				Usage:   "directory for persisted sessions",
				Sources: cli.EnvVars("SESSIONS_DIR"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			svc, manager, err := initializeServices(cmd.String("worlds-dir"), cmd.String("sessions-dir"))
			if err != nil {
				return err
			}
			go sessionCleanupRoutine(manager)
			return runHTTPServer(svc, cmd.String("host"), int64(cmd.Int("port")))
		},
	}
}

func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "run an MCP stdio server for AI agent clients",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "worlds-dir",
				Value:   "worlds",
				Usage:   "directory containing world documents",
				Sources: cli.EnvVars("WORLDS_DIR"),
			},
			&cli.StringFlag{
				Name:    "sessions-dir",
				Value:   "sessions",
				Usage:   "directory for persisted sessions",
				Sources: cli.EnvVars("SESSIONS_DIR"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			svc, _, err := initializeServices(cmd.String("worlds-dir"), cmd.String("sessions-dir"))
			if err != nil {
				return err
			}
			log.Println("MCP stdio server ready")
			return mcp.NewServer(svc).ServeStdio()
		},
	}
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "execute a program file against a world document and print the result",
		ArgsUsage: "<world.json> <program.kr>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 2 {
				return fmt.Errorf("expected a world document and a program file, got %d arguments", cmd.Args().Len())
			}

			doc, err := worldfile.ParseFile(cmd.Args().Get(0))
			if err != nil {
				return err
			}
			tier, err := doc.CommandTier()
			if err != nil {
				return err
			}
			w, err := doc.Build()
			if err != nil {
				return err
			}

			runErr := program.ExecFile(w, tier, cmd.Args().Get(1))
			fmt.Print(w.Render())
			if runErr != nil {
				return fmt.Errorf("program failed: %w", runErr)
			}
			return nil
		},
	}
}

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "check world documents without running anything",
		ArgsUsage: "<world.json or directory>...",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() == 0 {
				return fmt.Errorf("expected at least one world document or directory")
			}

			var paths []string
			for _, arg := range cmd.Args().Slice() {
				info, err := os.Stat(arg)
				if err != nil {
					return err
				}
				if !info.IsDir() {
					paths = append(paths, arg)
					continue
				}
				matches, err := filepath.Glob(filepath.Join(arg, "*.json"))
				if err != nil {
					return err
				}
				paths = append(paths, matches...)
			}
			if len(paths) == 0 {
				return fmt.Errorf("no world documents found")
			}

			failed := 0
			for _, path := range paths {
				if _, err := worldfile.ParseFile(path); err != nil {
					fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
					failed++
					continue
				}
				fmt.Printf("%s: ok\n", path)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d documents invalid", failed, len(paths))
			}
			return nil
		},
	}
}

// initializeServices wires the world manager, persisted session manager,
// and the world service.
func initializeServices(worldsDir, sessionsDir string) (service.WorldService, *session.Manager, error) {
	worldManager, err := worldfile.NewManager(worldsDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create world manager: %w", err)
	}

	persistence, err := session.NewFilePersistence(sessionsDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create session persistence: %w", err)
	}

	sessionManager := session.NewManagerWithPersistence(persistence)
	if err := sessionManager.LoadPersisted(); err != nil {
		log.Printf("Warning: Failed to load persisted sessions: %v", err)
	}

	return service.NewWorldService(sessionManager, worldManager), sessionManager, nil
}

// sessionCleanupRoutine periodically removes sessions that have not been
// accessed within the retention window.
func sessionCleanupRoutine(manager *session.Manager) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		removed := manager.CleanupExpired(24 * time.Hour)
		if removed > 0 {
			log.Printf("Cleaned up %d expired sessions", removed)
		}
	}
}

// runHTTPServer starts the HTTP server with the REST API, WebSocket hub,
// and an /mcp endpoint, and blocks until a shutdown signal arrives.
func runHTTPServer(svc service.WorldService, host string, port int64) error {
	hub := websocket.NewHub()
	go hub.Run()

	apiServer := api.NewServer(svc, hub)
	mcpServer := mcp.NewServer(svc)

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpServer.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	})

	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("HTTP server listening on %s", addr)
		log.Printf("REST API: http://%s/api", addr)
		log.Printf("WebSocket: ws://%s/ws?session=<session_id>", addr)
		log.Printf("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Printf("Received signal: %v. Shutting down...", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("Server stopped")
	return nil
}
