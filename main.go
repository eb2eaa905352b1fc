package main

import (
	"context"
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/ytdash/internal/config"
	"github.com/ytget/ytdash/internal/services"
	"github.com/ytget/ytdash/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.ytdash"
	AppName = "YTDash"

	WindowWidth  = 1100
	WindowHeight = 760
)

func main() {
	log.Printf("%s v%s starting...", AppName, version)

	env, err := config.LoadEnv()
	if err != nil {
		log.Fatalf("failed to load environment: %v", err)
	}

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())
	if icon, err := ui.LoadLogoResource(); err == nil {
		myApp.SetIcon(icon)
	}

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	settings := config.NewSettings(myApp)
	settings.ApplyEnv(env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc, err := services.Build(ctx, services.ConfigFromSettings(env, settings))
	if err != nil {
		log.Fatalf("failed to initialize services: %v", err)
	}
	defer svc.Close()

	ui.NewRootUI(myWindow, settings, svc.Jobs, svc.Exports, version)

	myWindow.ShowAndRun()
}
