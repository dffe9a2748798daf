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
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gowallet-cli",
		Short: "GoWallet CLI tool",
		Long:  `A command line interface for interacting with the GoWallet API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the GoWallet API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(walletCmd(), entryCmd(), ledgerCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func walletCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Wallet operations",
	}

	var label, initialBalance string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a wallet",
		Run: func(cmd *cobra.Command, args []string) {
			payload := map[string]any{"label": label}
			if initialBalance != "" {
				payload["initial_balance"] = initialBalance
			}
			doRequest(http.MethodPost, "/api/v1/wallets/", payload, "")
		},
	}
	createCmd.Flags().StringVar(&label, "label", "", "Wallet label")
	createCmd.Flags().StringVar(&initialBalance, "initial-balance", "", "Starting balance")
	_ = createCmd.MarkFlagRequired("label")

	getCmd := &cobra.Command{
		Use:   "get <wallet-id>",
		Short: "Get a wallet",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodGet, "/api/v1/wallets/"+args[0], nil, "")
		},
	}

	var labelFilter, ordering string
	var limit int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List wallets",
		Run: func(cmd *cobra.Command, args []string) {
			path := fmt.Sprintf("/api/v1/wallets/?limit=%d", limit)
			if labelFilter != "" {
				path += "&label=" + labelFilter
			}
			if ordering != "" {
				path += "&ordering=" + ordering
			}
			doRequest(http.MethodGet, path, nil, "")
		},
	}
	listCmd.Flags().StringVar(&labelFilter, "label", "", "Filter by label substring")
	listCmd.Flags().StringVar(&ordering, "ordering", "", "Sort key, prefix with - for descending")
	listCmd.Flags().IntVar(&limit, "limit", 20, "Max results")

	deleteCmd := &cobra.Command{
		Use:   "delete <wallet-id>",
		Short: "Delete a wallet and its entries",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodDelete, "/api/v1/wallets/"+args[0], nil, "")
		},
	}

	cmd.AddCommand(createCmd, getCmd, listCmd, deleteCmd)
	return cmd
}

func entryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Ledger entry operations",
	}

	var amount, key string
	applyCmd := &cobra.Command{
		Use:   "apply <wallet-id>",
		Short: "Apply a signed amount to a wallet",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			payload := map[string]any{"amount": amount}
			if key != "" {
				payload["idempotency_key"] = key
			}
			doRequest(http.MethodPost, "/api/v1/wallets/"+args[0]+"/entries", payload, key)
		},
	}
	applyCmd.Flags().StringVar(&amount, "amount", "", "Signed amount, negative debits")
	applyCmd.Flags().StringVar(&key, "key", "", "Idempotency key")
	_ = applyCmd.MarkFlagRequired("amount")

	var limit int
	listCmd := &cobra.Command{
		Use:   "list <wallet-id>",
		Short: "List a wallet's entries, newest first",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodGet, fmt.Sprintf("/api/v1/wallets/%s/entries?limit=%d", args[0], limit), nil, "")
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 20, "Max results")

	cmd.AddCommand(applyCmd, listCmd)
	return cmd
}

func ledgerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	consistencyCmd := &cobra.Command{
		Use:   "consistency",
		Short: "Check every wallet balance against its entries",
		Run: func(cmd *cobra.Command, args []string) {
			checkConsistency()
		},
	}

	cmd.AddCommand(consistencyCmd)
	return cmd
}

func doRequest(method, path string, payload any, idempotencyKey string) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			fmt.Printf("Failed to encode payload: %v\n", err)
			os.Exit(1)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		fmt.Printf("Failed to build request: %v\n", err)
		os.Exit(1)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	// A repeated idempotency key means the entry is already applied.
	if resp.StatusCode == http.StatusConflict {
		fmt.Printf("Already applied (Status: %d)\n%s\n", resp.StatusCode, string(respBody))
		return
	}

	if resp.StatusCode >= 400 {
		fmt.Printf("Request failed (Status: %d)\n%s\n", resp.StatusCode, string(respBody))
		os.Exit(1)
	}

	if len(respBody) == 0 {
		fmt.Printf("OK (Status: %d)\n", resp.StatusCode)
		return
	}

	var result any
	if err := json.Unmarshal(respBody, &result); err != nil {
		fmt.Printf("%s\n", string(respBody))
		return
	}
	printJSON(result)
}

func checkConsistency() {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/api/v1/ledger/consistency")
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Consistency check FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Consistency check PASSED\n")
	if consistent, ok := result["consistent"].(bool); ok {
		fmt.Printf("Consistent: %v\n", consistent)
	}
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to render response: %v\n", err)
		return
	}
	fmt.Println(string(data))
}
