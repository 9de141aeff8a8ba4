package completion

import (
	"github.com/foxseedlab/mojiokoshin-worker/internal/completion"
	"github.com/foxseedlab/mojiokoshin-worker/internal/config"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (completion.Client, error) {
		c := do.MustInvoke[*config.Config](i)
		return NewOpenAIClient(c.CompletionEndpoint, c.CompletionToken, nil), nil
	})
}
