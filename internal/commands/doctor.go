package commands

import (
	"fmt"

	"github.com/kuchuk-borom-debbarma/git-memo/internal/config"
	"github.com/kuchuk-borom-debbarma/git-memo/internal/doctor"
)

type doctorCommand struct{}

func (doctorCommand) Command() string {
	return "doctor"
}

func (doctorCommand) Description() string {
	return "Check the repository, identity and memo namespaces"
}

func (doctorCommand) ValidateArgs(args map[string]any) error {
	return nil
}

func (doctorCommand) Execute(cfg *config.Config, args map[string]any) error {
	s, err := openSession(cfg)
	if err != nil {
		return err
	}
	d, err := doctor.GetDoctor(s.root, s.cfg.Backend, s.store, s.identity)
	if err != nil {
		return err
	}
	fmt.Fprint(stdout, d.String())
	return nil
}

func init() {
	registerCommand(doctorCommand{})
}
