package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/booking-platform/services/internal/infrastructure/db/memory"
	"github.com/booking-platform/services/internal/pkg/config"
)

func TestRootCommands(t *testing.T) {
	c := qt.New(t)

	for _, root := range []struct {
		use string
		run func() []string
	}{
		{"reservation-service", func() []string { return subcommands(NewReservationCommand().Commands()) }},
		{"user-service", func() []string { return subcommands(NewUserCommand().Commands()) }},
	} {
		c.Check(root.run(), qt.DeepEquals, []string{"migrate", "serve"}, qt.Commentf(root.use))
	}

	c.Check(NewReservationCommand().PersistentFlags().Lookup(envFileFlag).DefValue, qt.Equals, ".env")
}

func TestMigrate_MemoryIsNoop(t *testing.T) {
	c := qt.New(t)

	envFile := filepath.Join(t.TempDir(), "test.env")
	c.Assert(os.WriteFile(envFile, []byte("STORE_DRIVER=memory\n"), 0o600), qt.IsNil)
	t.Setenv("STORE_DRIVER", "")
	os.Unsetenv("STORE_DRIVER")

	cmd := NewUserCommand()
	cmd.SetArgs([]string{"migrate", "--env-file", envFile})
	c.Assert(cmd.ExecuteContext(context.Background()), qt.IsNil)
}

func TestMigrate_BadConfigFails(t *testing.T) {
	c := qt.New(t)
	t.Setenv("STORE_DRIVER", "sqlite")

	cmd := NewReservationCommand()
	cmd.SetArgs([]string{"migrate", "--env-file", ""})
	cmd.SetErr(&discard{})
	c.Assert(cmd.ExecuteContext(context.Background()), qt.ErrorMatches, `config: unknown STORE_DRIVER "sqlite"`)
}

func TestServe_StopsWhenContextCancelled(t *testing.T) {
	c := qt.New(t)

	cfg := &config.Config{Port: "0", StoreDriver: config.DriverMemory, ShutdownTimeout: time.Second}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c.Assert(serve(ctx, reservationDef, cfg, zerolog.Nop()), qt.IsNil)
}

func TestOpenStores_Memory(t *testing.T) {
	c := qt.New(t)

	st, err := openStores(context.Background(), reservationDef.name, &config.Config{StoreDriver: config.DriverMemory}, zerolog.Nop())
	c.Assert(err, qt.IsNil)
	defer st.close(context.Background())

	c.Check(st.idem, qt.IsNil)
	c.Check(st.checks(), qt.HasLen, 0)
	c.Check(st.migrate(context.Background(), reservationDef.name), qt.IsNil)

	_, ok := st.reservationRepository().(*memory.ReservationRepository)
	c.Check(ok, qt.IsTrue)
	_, ok = st.userRepository().(*memory.UserRepository)
	c.Check(ok, qt.IsTrue)
}

func subcommands(cmds []*cobra.Command) []string {
	names := make([]string, 0, len(cmds))
	for _, c := range cmds {
		names = append(names, c.Name())
	}
	return names
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
