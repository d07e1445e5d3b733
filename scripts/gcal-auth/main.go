// gcal-auth authorizes Google Calendar access for an OAuth Desktop client and writes token.json.
//
// Usage:
//
//	go run ./scripts/gcal-auth -credentials google-credentials.json -token token.json
//
// Service Account credentials do not need this step.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"

	"task-reminder-bot/pkg/gcalendar"
)

func main() {
	credsPath := flag.String("credentials", "google-credentials.json", "OAuth Desktop App credentials file")
	tokenPath := flag.String("token", "token.json", "Where to write the OAuth token")
	calendarID := flag.String("calendar", gcalendar.DefaultCalendarID, "Calendar to list upcoming deadlines from after authorizing")
	flag.Parse()

	data, err := os.ReadFile(*credsPath)
	if err != nil {
		log.Fatalf("Failed to read credentials file %q: %v", *credsPath, err)
	}

	config, err := google.ConfigFromJSON(data, calendar.CalendarScope)
	if err != nil {
		log.Fatalf("Failed to parse credentials: %v\nMake sure %q is an OAuth Desktop App credentials file.", err, *credsPath)
	}

	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Println("=================================================================")
	fmt.Println("STEP 1: open this URL in a browser and sign in with your Google account:")
	fmt.Println()
	fmt.Println(authURL)
	fmt.Println()
	fmt.Println("=================================================================")
	fmt.Print("STEP 2: paste the authorization code here and press Enter: ")

	var code string
	if _, err := fmt.Scan(&code); err != nil {
		log.Fatalf("Failed to read authorization code: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	tok, err := config.Exchange(ctx, code)
	if err != nil {
		log.Fatalf("Failed to exchange authorization code: %v", err)
	}
	if err := writeToken(*tokenPath, tok); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("\nToken saved to %s\n", *tokenPath)

	// The bot reads token.json from its working directory.
	client, err := gcalendar.NewClientFromCredentialsFile(ctx, *credsPath)
	if err != nil {
		log.Fatalf("Token saved but calendar client failed: %v", err)
	}

	now := time.Now()
	events, err := client.ListEvents(ctx, gcalendar.ListEventsRequest{
		CalendarID: *calendarID,
		TimeMin:    now,
		TimeMax:    now.AddDate(0, 0, 7),
		MaxResults: 10,
	})
	if err != nil {
		log.Fatalf("Token saved but listing %q failed: %v", *calendarID, err)
	}

	fmt.Printf("Access to %q verified, %d event(s) in the next 7 days:\n", *calendarID, len(events))
	for _, e := range events {
		when := e.StartTime.Format("02.01 15:04")
		if e.AllDay {
			when = e.StartTime.Format("02.01")
		}
		fmt.Printf("  %s  %s\n", when, e.Summary)
	}
	fmt.Println("Restart the bot with google_calendar.enabled=true to sync deadlines.")
}

func writeToken(path string, tok *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(tok); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
