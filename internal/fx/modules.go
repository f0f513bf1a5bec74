package fx

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"wordrush/internal/config"
	"wordrush/internal/dictionary"
	"wordrush/internal/dispatch"
	"wordrush/internal/logger"
	"wordrush/internal/repository"
	"wordrush/internal/service"

	"go.uber.org/fx"
)

// ProvideRand builds the engine's random source. Seeded from crypto/rand;
// tests construct services with a fixed-seed PCG instead.
func ProvideRand() *rand.Rand {
	var seed [16]byte
	_, _ = crand.Read(seed[:])
	return rand.New(rand.NewPCG(
		binary.LittleEndian.Uint64(seed[:8]),
		binary.LittleEndian.Uint64(seed[8:]),
	))
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(dictionary.Load),
	fx.Provide(ProvideRand),
	// repo
	fx.Provide(repository.NewPlayerRepository),
	// svc
	fx.Provide(service.NewLeaderboardService),
	fx.Provide(service.NewGameService),
	// boundary
	fx.Provide(dispatch.NewDispatcher),
)
