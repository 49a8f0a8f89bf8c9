package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	voltax "github.com/voltaxhq/voltax-go"
)

func newRootCmd(client *voltax.Client, logger *zap.SugaredLogger) *cobra.Command {
	root := &cobra.Command{
		Use:           "voltax",
		Short:         "Initiate and verify payments across gateways",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(
		newInitiateCmd(client, logger),
		newVerifyCmd(client),
		newStatusCmd(client),
		newProvidersCmd(),
	)
	return root
}

// readPayload decodes a canonical payment request from a JSON file. Unknown
// keys are rejected so a typo'd provider option never slips through
// silently.
func readPayload(path string) (voltax.InitiatePaymentRequest, error) {
	var req voltax.InitiatePaymentRequest

	f, err := os.Open(path)
	if err != nil {
		return req, err
	}
	defer f.Close()

	decoder := json.NewDecoder(f)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		return req, fmt.Errorf("invalid payload %s: %w", path, err)
	}
	return req, nil
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func newInitiateCmd(client *voltax.Client, logger *zap.SugaredLogger) *cobra.Command {
	var (
		provider    string
		payloadPath string
		reference   string
	)

	cmd := &cobra.Command{
		Use:   "initiate",
		Short: "Initiate a payment from a JSON payload file",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := readPayload(payloadPath)
			if err != nil {
				return err
			}
			if reference != "" {
				req.Reference = reference
			}
			if req.Reference == "" {
				req.Reference = voltax.NewReference()
				logger.Infow("generated reference", "reference", req.Reference)
			}

			adapter, err := client.Provider(provider)
			if err != nil {
				return err
			}
			resp, err := adapter.InitiatePayment(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}

	cmd.Flags().StringVarP(&provider, "provider", "p", "", "provider name (paystack, hubtel, flutterwave, moolre, libertepay)")
	cmd.Flags().StringVarP(&payloadPath, "payload", "f", "", "path to the JSON payment request")
	cmd.Flags().StringVarP(&reference, "reference", "r", "", "override the payment reference")
	cmd.MarkFlagRequired("provider")
	cmd.MarkFlagRequired("payload")
	return cmd
}

func newVerifyCmd(client *voltax.Client) *cobra.Command {
	var (
		provider  string
		reference string
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a transaction by reference",
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := client.Provider(provider)
			if err != nil {
				return err
			}
			resp, err := adapter.VerifyTransaction(cmd.Context(), reference)
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}

	cmd.Flags().StringVarP(&provider, "provider", "p", "", "provider name")
	cmd.Flags().StringVarP(&reference, "reference", "r", "", "transaction reference")
	cmd.MarkFlagRequired("provider")
	cmd.MarkFlagRequired("reference")
	return cmd
}

func newStatusCmd(client *voltax.Client) *cobra.Command {
	var (
		provider  string
		reference string
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Print only the canonical payment status for a reference",
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := client.Provider(provider)
			if err != nil {
				return err
			}
			status, err := adapter.GetPaymentStatus(cmd.Context(), reference)
			if err != nil {
				return err
			}
			fmt.Println(status)
			return nil
		},
	}

	cmd.Flags().StringVarP(&provider, "provider", "p", "", "provider name")
	cmd.Flags().StringVarP(&reference, "reference", "r", "", "transaction reference")
	cmd.MarkFlagRequired("provider")
	cmd.MarkFlagRequired("reference")
	return cmd
}

func newProvidersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List supported provider names",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range voltax.ProviderNames() {
				fmt.Println(name)
			}
		},
	}
}
