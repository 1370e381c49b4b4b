package system

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/hae/internal/cli"
	"github.com/julianstephens/hae/internal/devserver"
	"github.com/julianstephens/hae/internal/models"
)

type DevServerCmd struct {
	Addr      string `help:"Listen address (defaults to dev_server.addr)."`
	Token     string `help:"Bearer token required by the server (defaults to dev_server.token)."`
	Professor string `help:"Email of a professor to register (defaults to session.email)."`
	Name      string `help:"Name of the registered professor." default:"Professor Teste"`
}

func (cmd *DevServerCmd) Run(ctx *cli.Context) error {
	addr, token, email := cmd.Addr, cmd.Token, cmd.Professor
	if ctx.Config != nil {
		if addr == "" {
			addr = ctx.Config.DevServer.Addr
		}
		if token == "" {
			token = ctx.Config.DevServer.Token
		}
		if email == "" {
			email = ctx.Config.Session.Email
		}
	}
	if addr == "" {
		return fmt.Errorf("no listen address given")
	}

	if !ctx.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := devserver.New(devserver.Options{Token: token, Now: ctx.Now, Validator: ctx.Validator})
	if email = strings.TrimSpace(email); email != "" {
		e := srv.Store().AddProfessor(models.Employee{
			Name:  cmd.Name,
			Email: email,
			Role:  "PROFESSOR",
			Institution: models.Institution{
				ID:              "dev",
				Name:            "Fatec Desenvolvimento",
				InstitutionCode: 1,
			},
		})
		fmt.Printf("Registered professor %s (ID: %s)\n", e.Email, e.ID)
	}

	fmt.Printf("Development server on http://%s (Ctrl+C to stop)\n", addr)
	return srv.Run(ctx.Background(), addr)
}
