package commands

import (
	"bufio"
	"encoding/base64"
	"fmt"
	"io"

	gssapi "github.com/janetuk/moonshot"
	"github.com/spf13/cobra"
)

// runTokenLoop drives sc to completion by reading base64-encoded tokens
// one per line from stdin and writing outgoing tokens one per line to
// stdout, following the same Continue() loop as the teacher's gss-client/
// gss-server examples (feed the peer's last token in, send the token
// back out, repeat until ContinueNeeded is false).
func runTokenLoop(cmd *cobra.Command, sc gssapi.SecContext) error {
	in := bufio.NewScanner(cmd.InOrStdin())
	in.Buffer(make([]byte, 0, 64*1024), 1<<20)
	out := cmd.OutOrStdout()

	var inTok []byte
	for {
		outTok, err := sc.Continue(inTok)
		if err != nil {
			return fmt.Errorf("continue: %w", err)
		}
		if len(outTok) > 0 {
			fmt.Fprintln(out, base64.StdEncoding.EncodeToString(outTok))
		}
		if !sc.ContinueNeeded() {
			break
		}
		if !in.Scan() {
			if err := in.Err(); err != nil {
				return fmt.Errorf("read token: %w", err)
			}
			return fmt.Errorf("read token: %w", io.ErrUnexpectedEOF)
		}
		inTok, err = base64.StdEncoding.DecodeString(in.Text())
		if err != nil {
			return fmt.Errorf("decode token: %w", err)
		}
	}

	info, err := sc.Inquire()
	if err != nil {
		return fmt.Errorf("inquire: %w", err)
	}
	fmt.Fprintf(out, "# established: initiator=%v fully_established=%v\n", info.LocallyInitiated, info.FullyEstablished)

	return nil
}

// runAcceptorTokenLoop is runTokenLoop's mirror image for the acceptor side:
// the acceptor has no first token to send on its own, so it always reads
// before it writes.
func runAcceptorTokenLoop(cmd *cobra.Command, sc gssapi.SecContext) error {
	in := bufio.NewScanner(cmd.InOrStdin())
	in.Buffer(make([]byte, 0, 64*1024), 1<<20)
	out := cmd.OutOrStdout()

	for {
		if !in.Scan() {
			if err := in.Err(); err != nil {
				return fmt.Errorf("read token: %w", err)
			}
			return fmt.Errorf("read token: %w", io.ErrUnexpectedEOF)
		}
		inTok, err := base64.StdEncoding.DecodeString(in.Text())
		if err != nil {
			return fmt.Errorf("decode token: %w", err)
		}

		outTok, err := sc.Continue(inTok)
		if err != nil {
			return fmt.Errorf("continue: %w", err)
		}
		if len(outTok) > 0 {
			fmt.Fprintln(out, base64.StdEncoding.EncodeToString(outTok))
		}
		if !sc.ContinueNeeded() {
			break
		}
	}

	info, err := sc.Inquire()
	if err != nil {
		return fmt.Errorf("inquire: %w", err)
	}
	fmt.Fprintf(out, "# established: initiator=%v fully_established=%v\n", info.LocallyInitiated, info.FullyEstablished)

	return nil
}
