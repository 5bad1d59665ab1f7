package states

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"
	"time"

	infraredis "smmpanel-bot/internal/infra/redis"
)

func TestStepKnown(t *testing.T) {
	for _, s := range AllSteps() {
		if !s.Known() {
			t.Errorf("step %q must be known", s)
		}
	}
	for _, s := range []Step{StepNone, "waiting_email", "ord_wt_colour"} {
		if s.Known() {
			t.Errorf("step %q must not be known", s)
		}
		if !(Conversation{Step: s}).Idle() {
			t.Errorf("conversation at %q must be idle", s)
		}
	}
}

func TestConversationWithCopies(t *testing.T) {
	base := Start(AccountWaitName, nil)
	next := base.With(AccountWaitPhone, KeyFullName, "Rahul")

	if _, ok := base.Get(KeyFullName); ok {
		t.Fatal("With must not mutate the receiver")
	}
	if v, _ := next.Get(KeyFullName); v != "Rahul" || next.Step != AccountWaitPhone {
		t.Fatalf("unexpected conversation %+v", next)
	}
}

func testStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	conv, err := store.Get(ctx, 1)
	if err != nil || !conv.Idle() || len(conv.Data) != 0 {
		t.Fatalf("unknown user: %+v, %v", conv, err)
	}

	want := Start(OrderWaitLink, map[string]string{KeyPlatform: "instagram"})
	if err := store.Set(ctx, 1, want); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := store.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Step != OrderWaitLink || got.Data[KeyPlatform] != "instagram" {
		t.Fatalf("Get = %+v", got)
	}

	if ok, _ := store.Exists(ctx, 1); !ok {
		t.Fatal("Exists after Set must be true")
	}

	if err := store.Set(ctx, 1, Conversation{}); err != nil {
		t.Fatalf("Set idle: %v", err)
	}
	if ok, _ := store.Exists(ctx, 1); ok {
		t.Fatal("idle conversation must not be kept")
	}

	_ = store.Set(ctx, 2, want)
	if err := store.Delete(ctx, 2); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if conv, _ := store.Get(ctx, 2); !conv.Idle() {
		t.Fatalf("after Delete: %+v", conv)
	}
}

func TestManager(t *testing.T) {
	testStore(t, NewManager())
}

func TestManagerReturnsCopies(t *testing.T) {
	ctx := context.Background()
	m := NewManager()
	_ = m.Set(ctx, 7, Start(TicketWaitDescription, map[string]string{KeySubject: "Refill"}))

	conv, _ := m.Get(ctx, 7)
	conv.Data[KeySubject] = "changed"

	again, _ := m.Get(ctx, 7)
	if again.Data[KeySubject] != "Refill" {
		t.Fatal("stored data leaked through Get")
	}
}

type fakeRedis struct {
	data map[string][]byte
	ttls map[string]time.Duration
}

func (f *fakeRedis) SetJSON(_ context.Context, key string, value any, ttl time.Duration) error {
	if f.ttls != nil {
		f.ttls[key] = ttl
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = b
	return nil
}

func (f *fakeRedis) GetJSON(_ context.Context, key string, dest any) (bool, error) {
	b, ok := f.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dest)
}

func (f *fakeRedis) Delete(_ context.Context, key string) error {
	delete(f.data, key)
	return nil
}

func (f *fakeRedis) Exists(_ context.Context, key string) (bool, error) {
	_, ok := f.data[key]
	return ok, nil
}

func TestRedisStoreWithFake(t *testing.T) {
	fake := &fakeRedis{data: make(map[string][]byte)}
	testStore(t, NewRedisStore(fake, "test:conv:", time.Hour))
}

func TestRedisStoreTTL(t *testing.T) {
	for _, ttl := range []time.Duration{0, time.Hour} {
		fake := &fakeRedis{data: make(map[string][]byte), ttls: make(map[string]time.Duration)}
		store := NewRedisStore(fake, "conv:", ttl)

		if err := store.Set(context.Background(), 7, Start(AccountWaitName, nil)); err != nil {
			t.Fatalf("Set: %v", err)
		}
		if got := fake.ttls["conv:7"]; got != ttl {
			t.Errorf("ttl = %v, want %v", got, ttl)
		}
	}
}

func TestRedisStoreLive(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}

	client := infraredis.New(infraredis.Config{Addr: addr}, slog.New(slog.NewTextHandler(os.Stdout, nil)))
	t.Cleanup(func() { _ = client.Close() })

	if err := client.Ping(context.Background()); err != nil {
		t.Skipf("redis unavailable: %v", err)
	}

	prefix := "test:conv:" + time.Now().Format("150405.000") + ":"
	testStore(t, NewRedisStore(client, prefix, time.Minute))
}
