package rpc

import (
	"github.com/foxseedlab/mojiokoshin-worker/internal/worker"
	"github.com/samber/do/v2"
	"google.golang.org/grpc"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*grpc.Server, error) {
		t, err := do.Invoke[*worker.Transcriber](i)
		if err != nil {
			return nil, err
		}
		s, err := do.Invoke[*worker.Summarizer](i)
		if err != nil {
			return nil, err
		}
		return NewServer(NewTranscriberServer(t), NewSummarizerServer(s)), nil
	})
}
