package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"frienddeck/internal/api"
	"frienddeck/internal/config"
	"frienddeck/internal/eventbus"
	"frienddeck/internal/notify"
	"frienddeck/internal/relationship"
	"frienddeck/internal/search"
	"frienddeck/internal/session"
	"frienddeck/internal/ui"
)

func main() {
	var configPath string
	var serverURL string
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.StringVar(&serverURL, "server", "", "Friend service base URL (overrides config)")
	flag.Parse()

	// Set up logging
	logFile, err := os.OpenFile("frienddeck.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Load configuration
	configSvc := config.NewService()
	var cfg *config.Config
	if configPath != "" {
		cfg, err = configSvc.LoadFromPath(configPath)
	} else {
		cfg, err = configSvc.Load()
	}
	if err != nil {
		log.Printf("Error loading config: %v", err)
		cfg = config.DefaultConfig()
	}
	if serverURL != "" {
		cfg.ServerURL = serverURL
	}

	// The token comes from config, or from the environment when unset there
	var sessions session.Provider
	if cfg.Token != "" {
		sessions = session.NewStaticProvider(cfg.Token)
	} else {
		sessions = session.NewEnvProvider("FRIENDDECK_TOKEN")
	}
	if _, err := sessions.Token(); err != nil {
		fmt.Println("No session token found. Set token in the config file or export FRIENDDECK_TOKEN.")
		os.Exit(1)
	}

	// Create event bus
	bus := eventbus.New()

	// Initialize services
	client := api.NewClient(cfg.ServerURL)
	sink := notify.New(bus)
	_ = relationship.NewStore(bus, client, sessions, sink) // subscribes to action events
	coordinator := search.NewCoordinator(bus, client, sink, cfg.Debounce())

	// Create UI model
	uiModel := ui.NewModel(bus, cfg, sessions, coordinator)

	// Create Bubble Tea program
	p := tea.NewProgram(uiModel, tea.WithAltScreen())

	// Set up event forwarding to UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Println("Event channel full, dropping event")
		}
	}
	for _, eventType := range []eventbus.EventType{
		eventbus.EventFriendsLoaded,
		eventbus.EventRecommendationsLoaded,
		eventbus.EventPendingRequestsLoaded,
		eventbus.EventRelationshipUpdated,
		eventbus.EventSearchStarted,
		eventbus.EventSearchSettled,
		eventbus.EventSearchFailed,
		eventbus.EventSearchCleared,
		eventbus.EventNotificationPosted,
		eventbus.EventError,
	} {
		bus.Subscribe(eventType, forward)
	}

	// Start forwarding events to UI in background
	go func() {
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	// Kick off the initial load
	bus.Publish(eventbus.RefreshRequestedEvent{})

	// Run the UI. eventChan is deliberately left open on exit: a bus
	// handler may still be forwarding, and the process is going away.
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
