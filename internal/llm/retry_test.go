package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// fakeClient returns queued responses or errors in order.
type fakeClient struct {
	calls     int
	responses []string
	errs      []error
}

func (f *fakeClient) Invoke(ctx context.Context, prompt string) (string, error) {
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if i < len(f.responses) {
		return f.responses[i], nil
	}
	return "", fmt.Errorf("no response queued for call %d", i)
}

func TestWithRetry_SucceedsFirstTry(t *testing.T) {
	fake := &fakeClient{responses: []string{"ok"}}
	client := WithRetry(fake, 3, 0)

	out, err := client.Invoke(context.Background(), "p")
	if err != nil {
		t.Fatalf("Invoke() error = %v, want nil", err)
	}
	if out != "ok" {
		t.Errorf("Invoke() = %q, want ok", out)
	}
	if fake.calls != 1 {
		t.Errorf("calls = %d, want 1", fake.calls)
	}
}

func TestWithRetry_RecoverFromProviderError(t *testing.T) {
	fake := &fakeClient{
		errs:      []error{&ProviderError{Provider: "test", Err: errors.New("boom")}, nil},
		responses: []string{"", "recovered"},
	}
	client := WithRetry(fake, 3, 0)

	out, err := client.Invoke(context.Background(), "p")
	if err != nil {
		t.Fatalf("Invoke() error = %v, want nil", err)
	}
	if out != "recovered" {
		t.Errorf("Invoke() = %q, want recovered", out)
	}
	if fake.calls != 2 {
		t.Errorf("calls = %d, want 2", fake.calls)
	}
}

func TestWithRetry_ExhaustsAttempts(t *testing.T) {
	provErr := &ProviderError{Provider: "test", Err: errors.New("down")}
	fake := &fakeClient{errs: []error{provErr, provErr, provErr}}
	client := WithRetry(fake, 3, 0)

	_, err := client.Invoke(context.Background(), "p")
	if err == nil {
		t.Fatal("Invoke() error = nil, want provider error")
	}
	if fake.calls != 3 {
		t.Errorf("calls = %d, want 3", fake.calls)
	}
	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Errorf("error = %v, want ProviderError", err)
	}
}

func TestWithRetry_NonProviderErrorNotRetried(t *testing.T) {
	fake := &fakeClient{errs: []error{errors.New("context canceled")}}
	client := WithRetry(fake, 3, 0)

	_, err := client.Invoke(context.Background(), "p")
	if err == nil {
		t.Fatal("Invoke() error = nil, want error")
	}
	if fake.calls != 1 {
		t.Errorf("calls = %d, want 1 (no retry for non-provider errors)", fake.calls)
	}
}
