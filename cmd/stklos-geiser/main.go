// Command stklos-geiser serves the runtime side of the Geiser protocol
// over stdin and stdout: one request expression in, one reply
// expression and a blank line out. It is meant to be spawned and owned
// by the editor's connection manager.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/geisertalk/stklos"
)

func main() {
	var (
		configPath string
		logPath    string
		encoding   string
		loadPath   string
		noPrompt   bool
		version    bool
	)
	flag.StringVar(&configPath, "config", "", "YAML configuration file")
	flag.StringVar(&logPath, "log", "", "protocol log file")
	flag.StringVar(&encoding, "encoding", "", "port encoding (utf-8, latin-1, windows-1252)")
	flag.StringVar(&loadPath, "load-path", "", "colon-separated load path directories")
	flag.BoolVar(&noPrompt, "no-prompt", false, "do not print the REPL prompt")
	flag.BoolVar(&version, "version", false, "print the runtime version and exit")
	flag.Parse()

	if version {
		fmt.Println(stklos.Version)
		return
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fail("config:", err)
	}
	cfg = applyEnv(cfg)
	if logPath != "" {
		cfg.Log = logPath
	}
	if encoding != "" {
		cfg.Encoding = encoding
	}
	if loadPath != "" {
		cfg.LoadPath = strings.Split(loadPath, ":")
	}
	if noPrompt {
		off := false
		cfg.Prompt = &off
	}

	vm := stklos.NewVM()
	// AddLoadPath prepends, so feed the configured entries in reverse
	// to keep their priority order.
	for i := len(cfg.LoadPath) - 1; i >= 0; i-- {
		if err := vm.AddLoadPath(cfg.LoadPath[i]); err != nil {
			fmt.Fprintln(os.Stderr, "stklos-geiser:", err)
		}
	}
	if cfg.Log != "" {
		log, err := stklos.NewProtocolLog(cfg.Log)
		if err != nil {
			fail("log:", err)
		}
		vm.Log = log
		defer log.Close()
	}

	in, err := stklos.NewPortReader(os.Stdin, cfg.Encoding)
	if err != nil {
		fail("encoding:", err)
	}
	out, err := stklos.NewPortWriter(os.Stdout, cfg.Encoding)
	if err != nil {
		fail("encoding:", err)
	}

	if err := serve(vm, in, out, cfg.promptOn()); err != nil {
		fail("serve:", err)
	}
}

// serve runs the request loop: one line, one request, one reply.
// Evaluation errors come back as error structures; only transport EOF
// ends the loop.
func serve(vm *stklos.VM, r io.Reader, w io.Writer, prompt bool) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	if prompt {
		fmt.Fprint(w, "stklos> ")
	}
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if vm.Log != nil {
			vm.Log.Record("request", line)
		}
		var reply stklos.Value
		exprs, err := stklos.ParseString(line)
		switch {
		case err != nil:
			reply = stklos.ErrorEnvelope(err)
		case len(exprs) == 0:
			continue
		default:
			for _, e := range exprs {
				reply = vm.EvalRequest(e)
			}
		}
		if err := stklos.WriteReply(w, vm, reply); err != nil {
			return err
		}
		if prompt {
			fmt.Fprint(w, "stklos> ")
		}
	}
	return scanner.Err()
}

func fail(args ...interface{}) {
	fmt.Fprintln(os.Stderr, append([]interface{}{"stklos-geiser:"}, args...)...)
	os.Exit(1)
}
