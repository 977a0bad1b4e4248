package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ExecRunner invokes an external command to evaluate the network. The
// request is written as JSON on stdin and the response read from stdout,
// which keeps the heavyweight inference stack out of this process.
type ExecRunner struct {
	Command []string
}

// Check verifies the runner command is configured and its executable can
// be found, without starting a prediction.
func (r *ExecRunner) Check() error {
	if len(r.Command) == 0 || strings.TrimSpace(r.Command[0]) == "" {
		return errors.New("model runner command is not configured")
	}
	if _, err := exec.LookPath(r.Command[0]); err != nil {
		return fmt.Errorf("can't find model runner %q: %w", r.Command[0], err)
	}
	return nil
}

// Predict runs the external command once for the whole batch.
func (r *ExecRunner) Predict(ctx context.Context, req *Request) (*Response, error) {
	if err := r.Check(); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode runner request: %w", err)
	}

	cmd := exec.CommandContext(ctx, r.Command[0], r.Command[1:]...)
	cmd.Stdin = bytes.NewReader(payload)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("model runner failed: %w: %s", err, msg)
		}
		return nil, fmt.Errorf("model runner failed: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(stdout.Bytes(), &resp); err != nil {
		return nil, fmt.Errorf("decode runner response: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("model runner: %s", resp.Error)
	}
	if err := resp.validate(req); err != nil {
		return nil, err
	}
	return &resp, nil
}
