package auth

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tranvq/pipeboard/internal/cli"
	"github.com/tranvq/pipeboard/internal/directory"
)

// LoginCmd returns the login command
func LoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the directory service",
		Long: `Authenticate and store the session token in the config file.

Accounts with two-factor authentication enabled are asked for a TOTP code
after the password is accepted. The code can also be passed up front with
--totp for non-interactive use.`,
		RunE: runLogin,
	}

	cmd.Flags().String("login", "", "Login or email (required)")
	_ = cmd.MarkFlagRequired("login")
	cmd.Flags().String("password", "", "Password (prompted when omitted)")
	cmd.Flags().String("totp", "", "TOTP code for accounts with 2FA")
	addOutputFlags(cmd)
	return cmd
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	formatter := formatterFor(cmd)

	login, _ := cmd.Flags().GetString("login")
	password, _ := cmd.Flags().GetString("password")
	totp, _ := cmd.Flags().GetString("totp")

	if password == "" {
		fmt.Fprint(os.Stderr, "Password: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			_ = formatter.Error("PASSWORD_READ_ERROR", err.Error())
			return err
		}
		password = string(raw)
	}

	c, err := cli.NewCLI(ctx)
	if err != nil {
		_ = formatter.Error("INITIALIZATION_ERROR", err.Error())
		return err
	}
	defer func() { _ = c.Close() }()

	req := directory.LoginRequest{Login: login, Password: password, TOTPCode: totp}
	res, err := c.App.Directory.Login(ctx, req)

	// A 2FA account answers the password-only attempt with a TOTP demand,
	// either as a flagged response or as an error mentioning 2FA/TOTP.
	needTOTP := err != nil && directory.IsTOTPError(err)
	if err == nil && res.RequiresTOTP() {
		needTOTP = true
	}
	if needTOTP && totp == "" {
		fmt.Fprint(os.Stderr, "TOTP code: ")
		reader := bufio.NewReader(os.Stdin)
		code, readErr := reader.ReadString('\n')
		if readErr != nil {
			_ = formatter.Error("TOTP_READ_ERROR", readErr.Error())
			return readErr
		}
		req.TOTPCode = strings.TrimSpace(code)
		res, err = c.App.Directory.Login(ctx, req)
	}
	if err != nil {
		_ = formatter.Error("LOGIN_FAILED", err.Error())
		os.Exit(cli.ExitError)
	}
	if res.Token == "" {
		_ = formatter.Error("LOGIN_FAILED", "no token issued")
		os.Exit(cli.ExitError)
	}

	c.App.Config.API.Token = res.Token
	if err := c.App.Config.Save(); err != nil {
		_ = formatter.Error("CONFIG_SAVE_ERROR", err.Error())
		return err
	}

	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"user":    res.User,
		})
	}
	if !formatter.Quiet {
		name := login
		if res.User != nil {
			name = res.User.DisplayName()
		}
		fmt.Printf("Logged in as %s\n", name)
	}
	return nil
}
