package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/fatih/color"
)

var (
	app       = kingpin.New("crew", "Command line client for the crewd task dispatch service")
	serverURL = app.Flag("server", "Base URL of the crewd server").
			Envar("CREWD_SERVER_URL").
			Default("http://localhost:8000").String()

	submitCmd  = app.Command("submit", "Submit a task and wait for the result")
	submitDesc = submitCmd.Arg("description", "Task description").Required().String()
	submitType = submitCmd.Flag("type", "Task type").Default("general").String()

	getCmd = app.Command("get", "Look up a previously submitted task")
	getID  = getCmd.Arg("id", "Task ID").Required().String()

	agentsCmd = app.Command("agents", "List registered agents")

	healthCmd = app.Command("health", "Check server health")
)

func main() {
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := NewClient(*serverURL)

	var err error
	switch command {
	case submitCmd.FullCommand():
		err = handleSubmit(ctx, client, *submitDesc, *submitType)
	case getCmd.FullCommand():
		err = handleGet(ctx, client, *getID)
	case agentsCmd.FullCommand():
		err = handleAgents(ctx, client)
	case healthCmd.FullCommand():
		err = handleHealth(ctx, client)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func handleSubmit(ctx context.Context, client *Client, description, taskType string) error {
	t, err := client.SubmitTask(ctx, description, taskType)
	if err != nil {
		return err
	}
	printTask(t)
	return nil
}

func handleGet(ctx context.Context, client *Client, id string) error {
	t, err := client.GetTask(ctx, id)
	if err != nil {
		return err
	}
	printTask(t)
	return nil
}

func handleAgents(ctx context.Context, client *Client) error {
	agents, err := client.ListAgents(ctx)
	if err != nil {
		return err
	}
	for _, a := range agents {
		fmt.Printf("%s (%s)\n    %s\n", color.CyanString(a.Name), a.Role, a.Goal)
	}
	return nil
}

func handleHealth(ctx context.Context, client *Client) error {
	h, err := client.Health(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("status: %s\nstore: %s\nagents available: %d\n",
		colorStatus(h.Status), colorStatus(h.Store), h.AgentsAvailable)
	return nil
}

func printTask(t *TaskView) {
	fmt.Printf("task: %s\nstatus: %s\n", t.TaskID, colorStatus(t.Status))
	if t.Result != nil {
		fmt.Printf("result: %s\n", *t.Result)
	}
}

func colorStatus(status string) string {
	switch status {
	case "completed", "healthy":
		return color.GreenString(status)
	case "failed", "unhealthy":
		return color.RedString(status)
	default:
		return color.YellowString(status)
	}
}
