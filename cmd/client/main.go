// Package main is an interactive operator shell for the subscriber panel API.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/atinyakov/radclients/internal/client/panel"
	"github.com/atinyakov/radclients/internal/models"
)

var (
	version   string
	buildDate string
)

const help = "Available commands: help, login, list, zones, get <id_number>, add, edit <id_number>, status <id_number> <status>, delete <id_number>, exit"

// repl runs the interactive shell loop against api.
func repl(api *panel.API, in io.Reader, out io.Writer) {
	p := panel.NewPrompter(in, out)

	for {
		line := p.Ask("radclients> ")
		args := strings.Fields(line)
		if len(args) == 0 {
			if line == "" && !p.More() {
				return
			}
			continue
		}
		switch args[0] {
		case "help":
			fmt.Fprintln(out, help)
		case "login":
			err := api.Login(p.Ask("Username: "), p.Ask("Password: "))
			switch {
			case errors.Is(err, panel.ErrInvalidCredentials):
				fmt.Fprintln(out, "Invalid username or password")
			case err != nil:
				fmt.Fprintln(out, "Login failed:", err)
			default:
				fmt.Fprintln(out, "Login successful")
			}
		case "list":
			clients, err := api.Clients()
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			printClients(out, clients)
		case "zones":
			zones, err := api.Zones()
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			for _, z := range zones {
				fmt.Fprintf(out, "%d\t%s\n", z.ID, z.Area)
			}
		case "get":
			if len(args) < 2 {
				fmt.Fprintln(out, "Usage: get <id_number>")
				continue
			}
			c, err := api.Client(args[1])
			switch {
			case err != nil:
				fmt.Fprintln(out, err)
			case c == nil:
				fmt.Fprintln(out, "Client not found")
			default:
				b, _ := json.MarshalIndent(c, "", "  ")
				fmt.Fprintln(out, string(b))
			}
		case "add":
			created, err := api.Create(p.PromptForClient())
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			fmt.Fprintf(out, "Client %s created with id %d\n", created.IDNumber, created.ID)
		case "edit":
			if len(args) < 2 {
				fmt.Fprintln(out, "Usage: edit <id_number>")
				continue
			}
			c := p.PromptForClient()
			zoneName := p.Ask("Enter zone name (leave empty to keep zone id): ")
			updated, err := api.Update(args[1], c, zoneName)
			switch {
			case err != nil:
				fmt.Fprintln(out, err)
			case updated == nil:
				fmt.Fprintln(out, "Client not found")
			default:
				fmt.Fprintf(out, "Client %s updated\n", updated.IDNumber)
			}
		case "status":
			if len(args) < 3 {
				fmt.Fprintln(out, "Usage: status <id_number> <status>")
				continue
			}
			updated, err := api.SetStatus(args[1], args[2])
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			fmt.Fprintf(out, "Client %s is now %s\n", updated.IDNumber, updated.Status)
		case "delete":
			if len(args) < 2 {
				fmt.Fprintln(out, "Usage: delete <id_number>")
				continue
			}
			if err := api.Delete(args[1]); err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			fmt.Fprintln(out, "Client deleted")
		case "exit":
			fmt.Fprintln(out, "Bye")
			return
		default:
			fmt.Fprintln(out, "Unknown command. Type 'help' for a list of commands.")
		}
	}
}

func printClients(out io.Writer, clients []models.ClientView) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID NUMBER\tNAME\tSTATUS\tZONE\tUSERNAME")
	for _, c := range clients {
		zone := "-"
		if c.Area != nil {
			zone = *c.Area
		}
		fmt.Fprintf(tw, "%s\t%s %s\t%s\t%s\t%s\n", c.IDNumber, c.Name, c.LastName, c.Status, zone, c.Username)
	}
	_ = tw.Flush()
}

// main parses command-line flags and starts the shell.
func main() {
	var (
		baseURL string
		showVer bool
	)

	flag.StringVar(&baseURL, "url", "http://localhost:5000", "server base URL")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("RadClients shell\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}
	if baseURL == "" {
		log.Fatal("please provide -url=http://host:port")
	}

	repl(panel.New(baseURL), os.Stdin, os.Stdout)
}
