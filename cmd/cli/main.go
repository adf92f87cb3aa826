package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
	token   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "goatm-cli",
		Short: "GoATM CLI tool",
		Long:  `A command line interface for interacting with the GoATM teller API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the GoATM API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("GOATM_TOKEN"), "Session token (defaults to GOATM_TOKEN)")

	loginCmd := &cobra.Command{
		Use:   "login <account-id> <pin>",
		Short: "Authenticate and print a session token",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			post("/api/v1/auth/login", map[string]string{"account_id": args[0], "pin": args[1]}, false)
		},
	}

	balanceCmd := &cobra.Command{
		Use:   "balance",
		Short: "Show the current balance",
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/balance")
		},
	}

	withdrawCmd := &cobra.Command{
		Use:   "withdraw <amount>",
		Short: "Withdraw from the account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			post("/api/v1/withdraw", map[string]string{"amount": args[0]}, true)
		},
	}

	depositCmd := &cobra.Command{
		Use:   "deposit <amount>",
		Short: "Deposit into the account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			post("/api/v1/deposit", map[string]string{"amount": args[0]}, true)
		},
	}

	transferCmd := &cobra.Command{
		Use:   "transfer <recipient> <amount>",
		Short: "Transfer to another account",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			post("/api/v1/transfer", map[string]string{"recipient": args[0], "amount": args[1]}, true)
		},
	}

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show the transaction history",
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/history")
		},
	}

	changePinCmd := &cobra.Command{
		Use:   "change-pin <old-pin> <new-pin>",
		Short: "Change the account PIN",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			post("/api/v1/pin", map[string]string{"old_pin": args[0], "new_pin": args[1]}, true)
		},
	}

	interestCmd := &cobra.Command{
		Use:   "interest [rate]",
		Short: "Accrue interest (server default rate when omitted)",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			body := map[string]string{}
			if len(args) == 1 {
				body["rate"] = args[0]
			}
			post("/api/v1/interest", body, true)
		},
	}

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "End the session",
		Run: func(cmd *cobra.Command, args []string) {
			post("/api/v1/logout", map[string]string{}, true)
		},
	}

	rootCmd.AddCommand(loginCmd, balanceCmd, withdrawCmd, depositCmd, transferCmd, historyCmd, changePinCmd, interestCmd, logoutCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func get(path string) {
	req, err := http.NewRequest(http.MethodGet, baseURL+path, nil)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	do(req)
}

func post(path string, body map[string]string, authed bool) {
	payload, err := json.Marshal(body)
	if err != nil {
		fmt.Printf("Error encoding request: %v\n", err)
		os.Exit(1)
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+path, bytes.NewReader(payload))
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	do(req)
}

func do(req *http.Request) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		fmt.Println(string(raw))
	} else {
		fmt.Println(pretty.String())
	}

	if resp.StatusCode >= 400 {
		os.Exit(1)
	}
}
