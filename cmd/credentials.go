package cmd

import (
	"errors"
	"fmt"

	"github.com/echo360-dl/echo360/auth"
	"github.com/echo360-dl/echo360/icon"
	"github.com/echo360-dl/echo360/key"
	"github.com/echo360-dl/echo360/prompt"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(credentialsCmd)
	credentialsCmd.PersistentFlags().StringP("username", "u", "", "Username the password belongs to")
	credentialsCmd.AddCommand(credentialsSetCmd, credentialsDeleteCmd)
}

var credentialsCmd = &cobra.Command{
	Use:   "credentials",
	Short: "Manage the password stored in the system keyring",
}

// username returns the --username flag, the configured username or asks for one.
func username(cmd *cobra.Command) string {
	name, _ := cmd.Flags().GetString("username")
	if name == "" {
		name = viper.GetString(key.CredentialsUsername)
	}

	if name == "" {
		var err error
		name, err = prompt.New().PromptText("Username")
		handleErr(err)
	}

	if name == "" {
		handleErr(errors.New("username is required"))
	}
	return name
}

var credentialsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store a password",
	Run: func(cmd *cobra.Command, args []string) {
		name := username(cmd)

		password, err := prompt.New().PromptSecret(fmt.Sprintf("Password for %s", name))
		handleErr(err)
		if password == "" {
			handleErr(errors.New("password is empty"))
		}

		handleErr(auth.SetPassword(name, password))

		if viper.GetString(key.CredentialsUsername) == "" {
			viper.Set(key.CredentialsUsername, name)
			handleErr(writeConfig())
		}

		fmt.Printf("%s stored the password of %s\n", icon.Get(icon.Success), name)
	},
}

var credentialsDeleteCmd = &cobra.Command{
	Use:     "delete",
	Short:   "Remove a stored password",
	Aliases: []string{"remove"},
	Run: func(cmd *cobra.Command, args []string) {
		name := username(cmd)

		err := auth.DeletePassword(name)
		if errors.Is(err, auth.ErrNotFound) {
			fmt.Printf("%s no password stored for %s\n", icon.Get(icon.Info), name)
			return
		}
		handleErr(err)

		fmt.Printf("%s removed the password of %s\n", icon.Get(icon.Success), name)
	},
}
