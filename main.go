package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"mapgame/internal/cache"
	"mapgame/internal/config"
	"mapgame/internal/debug"
	"mapgame/internal/session"
	"mapgame/internal/ui"
	"mapgame/internal/worldmap"
)

func main() {
	// Parse command line flags
	help := flag.Bool("h", false, "Show help message")
	configPath := flag.String("config", config.DefaultPath, "Configuration file (created with defaults if missing)")
	mapName := flag.String("map", "", "Map to play (overrides map_name)")
	mapsDir := flag.String("maps", "", "Maps directory (default: ~/.mapgame/maps)")
	debugLog := flag.String("d", "", "Debug log file (e.g., debug.log)")
	flag.Parse()

	// Show help if requested
	if *help {
		fmt.Println("mapgame - Terminal world map: point at nations, pick one, explore its provinces")
		fmt.Println("\nUsage: mapgame [options]")
		fmt.Println("\nOptions:")
		flag.PrintDefaults()
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *mapName != "" {
		cfg.MapName = *mapName
	}
	if *mapsDir != "" {
		cfg.MapsDir = *mapsDir
	}

	// Set up debug logging after .env has been applied
	if *debugLog != "" {
		logFile, err := os.Create(*debugLog)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to create debug log: %v\n", err)
		} else {
			defer logFile.Close()
			debug.SetOutput(logFile)
			debug.Log("mapgame debug log started")
			fmt.Printf("Debug logging enabled: %s\n", *debugLog)
		}
	}

	// Locate the map, unpacking its bundle on first use
	maps, err := cache.NewManager(cfg.MapsDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open maps directory: %v\n", err)
		os.Exit(1)
	}

	dir, err := maps.EnsureMap(cfg.MapName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if names, listErr := maps.Maps(); listErr == nil && len(names) > 0 {
			fmt.Fprintf(os.Stderr, "Available maps in %s: %v\n", maps.GetMapsDir(), names)
		}
		os.Exit(1)
	}

	fmt.Printf("Loading map %s...\n", cfg.MapName)
	world, err := worldmap.Load(worldmap.LoadOptions{
		Name:                 cfg.MapName,
		Dir:                  dir,
		NationIDProperty:     cfg.NationIDProperty,
		NationNameProperty:   cfg.NationNameProperty,
		ProvinceIDProperty:   cfg.ProvinceIDProperty,
		ProvinceNameProperty: cfg.ProvinceNameProperty,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %d nations\n", world.Len())

	app, err := ui.NewApp(world, session.NewPlayer(), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create application: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Run with panic recovery to ensure terminal is always restored
	func() {
		defer func() {
			if r := recover(); r != nil {
				fmt.Fprintf(os.Stderr, "\nPanic: %v\n", r)
			}
		}()

		if err := app.Run(ctx); err != nil && err != context.Canceled {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}()

	fmt.Println("\nGoodbye!")
}
