package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/hae/internal/cli"
	"github.com/julianstephens/hae/internal/keyring"
)

type AuthCmd struct {
	SetToken AuthSetTokenCmd `cmd:"" help:"Store the API token in the OS keyring."`
	Clear    AuthClearCmd    `cmd:"" help:"Remove the API token from the OS keyring."`
	Whoami   AuthWhoamiCmd   `cmd:"" help:"Show the signed-in professor."`
}

type AuthSetTokenCmd struct {
	Token string `arg:"" help:"Bearer token issued by the HAE backend."`
}

func (cmd *AuthSetTokenCmd) Run(ctx *cli.Context) error {
	if err := keyring.SetToken(cmd.Token); err != nil {
		return err
	}
	fmt.Printf("✓ Token %s stored in OS keyring\n", keyring.Mask(cmd.Token))
	return nil
}

type AuthClearCmd struct{}

func (cmd *AuthClearCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteToken(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no token found in keyring")
		}
		return err
	}
	fmt.Println("✓ Token deleted from OS keyring")
	return nil
}

type AuthWhoamiCmd struct{}

func (cmd *AuthWhoamiCmd) Run(ctx *cli.Context) error {
	session, err := ctx.Session()
	if err != nil {
		return err
	}

	e := session.Employee
	fmt.Printf("%s <%s>\n", e.Name, e.Email)
	fmt.Printf("  ID:          %s\n", e.ID)
	if e.Role != "" {
		fmt.Printf("  Role:        %s\n", e.Role)
	}
	if e.Course != "" {
		fmt.Printf("  Course:      %s\n", e.Course)
	}
	if e.Institution.Name != "" {
		fmt.Printf("  Institution: %s (%d)\n", e.Institution.Name, e.Institution.InstitutionCode)
	}
	if session.Token != "" {
		fmt.Printf("  Token:       %s\n", keyring.Mask(session.Token))
	} else {
		fmt.Println("  Token:       none (use 'hae auth set-token')")
	}
	return nil
}
