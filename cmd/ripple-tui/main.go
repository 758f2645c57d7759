package main

import (
	"flag"
	"fmt"
	"net/url"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ripple-chat/tui/internal/app"
	"github.com/ripple-chat/tui/internal/client"
	"github.com/ripple-chat/tui/internal/config"
)

func main() {
	cfgPath := flag.String("config", defaultConfigPath(), "Path to config file")
	wsURL := flag.String("url", "", "WebSocket URL of the Ripple backend (overrides config)")
	token := flag.String("token", "", "Auth token (overrides config)")
	room := flag.String("room", "", "Room to join (overrides config)")
	user := flag.String("user", "", "Local user ID (overrides config)")
	logFile := flag.String("log", "", "Write debug logs to this file")
	flag.Parse()

	cfg, err := config.LoadOrDefault(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *wsURL != "" {
		cfg.Server.WSURL = *wsURL
	}
	if *token != "" {
		cfg.Server.Token = *token
	}
	if *room != "" {
		cfg.Chat.Room = *room
	}
	if *user != "" {
		cfg.Chat.User = *user
	}

	if *logFile != "" {
		f, err := tea.LogToFile(*logFile, "ripple")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	}

	// Derive HTTP base URL from WebSocket URL.
	httpBase := deriveHTTPBase(cfg.Server.WSURL)

	ws := client.NewWSClient(cfg.Server.WSURL, cfg.Server.Token, cfg.Chat.Room)
	httpClient := client.NewHTTPClient(httpBase, cfg.Server.Token)

	m := app.New(ws, httpClient, app.Options{
		Room:           cfg.Chat.Room,
		LocalUser:      cfg.Chat.User,
		Markdown:       cfg.Chat.Markdown,
		InsertDuration: cfg.Animation.InsertDuration.Std(),
		RemoveDuration: cfg.Animation.RemoveDuration.Std(),
	})
	p := tea.NewProgram(m, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if fm, ok := final.(app.Model); ok && fm.Err() != nil {
		fmt.Fprintf(os.Stderr, "Feed desynchronized: %v\n", fm.Err())
		os.Exit(1)
	}
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "ripple.yaml"
	}
	return home + "/.config/ripple/config.yaml"
}

// deriveHTTPBase converts ws://host:port/ws → http://host:port
func deriveHTTPBase(wsURL string) string {
	u, err := url.Parse(wsURL)
	if err != nil {
		return "http://127.0.0.1:8080"
	}
	scheme := "http"
	if strings.HasPrefix(u.Scheme, "wss") {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s", scheme, u.Host)
}
