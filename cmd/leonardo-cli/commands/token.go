package commands

import (
	"fmt"
	"leonardo-backend/lib/serviceutil"

	"github.com/mazen160/go-random"
	"github.com/spf13/cobra"
)

var tokenLength int

func init() {
	tokenCmd.Flags().IntVar(&tokenLength, "length", 32, "Length of the token.")
	rootCmd.AddCommand(tokenCmd)
}

var tokenCmd = &cobra.Command{
	Use:   "token [--length <n>]",
	Short: "Prints a random access token to put into access_token.",
	Run: func(cmd *cobra.Command, args []string) {
		token, err := random.String(tokenLength)
		if err != nil {
			serviceutil.Fatal("failed to generate token", err)
		}
		fmt.Println(token)
	},
}
