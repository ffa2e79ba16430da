package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pior/beanstalk"
)

func main() {
	addr := flag.String("addr", beanstalk.DefaultAddr, "beanstalkd server address")
	flag.Parse()

	fmt.Println("Beanstalk CLI Tool")
	fmt.Println("==================")
	fmt.Println("Commands: put <body> [pri] [delay] [ttr], reserve [timeout], delete <id>, kick <bound>,")
	fmt.Println("          peek <id>, peek-ready, peek-delayed, peek-buried, use <tube>, watch <tube>,")
	fmt.Println("          ignore <tube>, tubes, using, watching, stats, stats-tube <tube>, stats-job <id>,")
	fmt.Println("          pause-tube <tube> <seconds>, metrics, quit")
	fmt.Println()

	conn, err := beanstalk.Dial(*addr, beanstalk.Config{})
	if err != nil {
		fmt.Printf("Failed to connect to %s: %v\n", *addr, err)
		os.Exit(1)
	}
	defer conn.Close()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		command := strings.ToLower(parts[0])

		switch command {
		case "put":
			if len(parts) < 2 || len(parts) > 5 {
				fmt.Println("Usage: put <body> [pri] [delay_seconds] [ttr_seconds]")
				continue
			}
			handlePut(conn, parts[1:])

		case "reserve":
			if len(parts) > 2 {
				fmt.Println("Usage: reserve [timeout_seconds]")
				continue
			}
			handleReserve(conn, parts[1:])

		case "delete", "del":
			if len(parts) != 2 {
				fmt.Println("Usage: delete <id>")
				continue
			}
			handleDelete(conn, parts[1])

		case "kick":
			if len(parts) != 2 {
				fmt.Println("Usage: kick <bound>")
				continue
			}
			handleKick(conn, parts[1])

		case "peek":
			if len(parts) != 2 {
				fmt.Println("Usage: peek <id>")
				continue
			}
			id, err := strconv.ParseUint(parts[1], 10, 64)
			if err != nil {
				fmt.Printf("Invalid job id: %v\n", err)
				continue
			}
			printJob(conn.Peek(id))

		case "peek-ready":
			printJob(conn.PeekReady())

		case "peek-delayed":
			printJob(conn.PeekDelayed())

		case "peek-buried":
			printJob(conn.PeekBuried())

		case "use":
			if len(parts) != 2 {
				fmt.Println("Usage: use <tube>")
				continue
			}
			tube, err := conn.Use(parts[1])
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			fmt.Printf("Using tube %q\n", tube)

		case "watch":
			if len(parts) != 2 {
				fmt.Println("Usage: watch <tube>")
				continue
			}
			count, err := conn.Watch(parts[1])
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			fmt.Printf("Watching %d tube(s)\n", count)

		case "ignore":
			if len(parts) != 2 {
				fmt.Println("Usage: ignore <tube>")
				continue
			}
			count, err := conn.Ignore(parts[1])
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			fmt.Printf("Watching %d tube(s)\n", count)

		case "tubes":
			printTubes(conn.Tubes())

		case "using":
			tube, err := conn.Using()
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			fmt.Printf("Using tube %q\n", tube)

		case "watching":
			printTubes(conn.Watching())

		case "stats":
			printDocument(conn.Stats())

		case "stats-tube":
			if len(parts) != 2 {
				fmt.Println("Usage: stats-tube <tube>")
				continue
			}
			printDocument(conn.StatsTube(parts[1]))

		case "stats-job":
			if len(parts) != 2 {
				fmt.Println("Usage: stats-job <id>")
				continue
			}
			id, err := strconv.ParseUint(parts[1], 10, 64)
			if err != nil {
				fmt.Printf("Invalid job id: %v\n", err)
				continue
			}
			printDocument(conn.StatsJob(id))

		case "pause-tube":
			if len(parts) != 3 {
				fmt.Println("Usage: pause-tube <tube> <seconds>")
				continue
			}
			handlePauseTube(conn, parts[1], parts[2])

		case "metrics":
			printMetrics(conn.Metrics())

		case "help":
			fmt.Println("Commands:")
			fmt.Println("  put <body> [pri] [delay] [ttr]  - Insert a job into the used tube")
			fmt.Println("  reserve [timeout]               - Lease the next ready job")
			fmt.Println("  delete <id>                     - Delete a job")
			fmt.Println("  kick <bound>                    - Kick buried or delayed jobs")
			fmt.Println("  peek <id>                       - Show a job without reserving it")
			fmt.Println("  peek-ready|peek-delayed|peek-buried")
			fmt.Println("  use <tube>                      - Select the tube for put")
			fmt.Println("  watch <tube> / ignore <tube>    - Edit the reserve watch list")
			fmt.Println("  tubes / using / watching        - List tubes")
			fmt.Println("  stats [-tube|-job]              - Server, tube, or job statistics")
			fmt.Println("  pause-tube <tube> <seconds>     - Pause job delivery from a tube")
			fmt.Println("  metrics                         - Client-side operation counters")
			fmt.Println("  quit                            - Exit the CLI")

		case "quit", "exit":
			fmt.Println("Goodbye!")
			return

		default:
			fmt.Printf("Unknown command: %s. Type 'help' for available commands.\n", command)
		}
	}

	if err := scanner.Err(); err != nil {
		fmt.Printf("Error reading input: %v\n", err)
	}
}

func handlePut(conn *beanstalk.Conn, args []string) {
	pri := beanstalk.DefaultPriority
	delay := time.Duration(0)
	ttr := beanstalk.DefaultTTR

	if len(args) > 1 {
		v, err := strconv.ParseUint(args[1], 10, 32)
		if err != nil {
			fmt.Printf("Invalid priority: %v\n", err)
			return
		}
		pri = uint32(v)
	}
	if len(args) > 2 {
		secs, err := strconv.Atoi(args[2])
		if err != nil {
			fmt.Printf("Invalid delay: %v\n", err)
			return
		}
		delay = time.Duration(secs) * time.Second
	}
	if len(args) > 3 {
		secs, err := strconv.Atoi(args[3])
		if err != nil {
			fmt.Printf("Invalid ttr: %v\n", err)
			return
		}
		ttr = time.Duration(secs) * time.Second
	}

	start := time.Now()
	id, err := conn.Put([]byte(args[0]), pri, delay, ttr)
	duration := time.Since(start)

	if err != nil {
		fmt.Printf("Error: %v (took %v)\n", err, duration)
		return
	}
	fmt.Printf("Inserted job %d (took %v)\n", id, duration)
}

func handleReserve(conn *beanstalk.Conn, args []string) {
	start := time.Now()

	var job *beanstalk.Job
	var err error
	if len(args) == 1 {
		secs, convErr := strconv.Atoi(args[0])
		if convErr != nil {
			fmt.Printf("Invalid timeout: %v\n", convErr)
			return
		}
		job, err = conn.ReserveWithTimeout(time.Duration(secs) * time.Second)
	} else {
		job, err = conn.Reserve()
	}
	duration := time.Since(start)

	if err != nil {
		fmt.Printf("Error: %v (took %v)\n", err, duration)
		return
	}
	if job == nil {
		fmt.Printf("No job available (took %v)\n", duration)
		return
	}
	fmt.Printf("Reserved job %d: %s (took %v)\n", job.ID, string(job.Body), duration)
}

func handleDelete(conn *beanstalk.Conn, arg string) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		fmt.Printf("Invalid job id: %v\n", err)
		return
	}

	start := time.Now()
	err = conn.Delete(id)
	duration := time.Since(start)

	if err != nil {
		fmt.Printf("Error: %v (took %v)\n", err, duration)
		return
	}
	fmt.Printf("Delete successful (took %v)\n", duration)
}

func handleKick(conn *beanstalk.Conn, arg string) {
	bound, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Printf("Invalid bound: %v\n", err)
		return
	}

	count, err := conn.Kick(bound)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Kicked %d job(s)\n", count)
}

func handlePauseTube(conn *beanstalk.Conn, tube, secsArg string) {
	secs, err := strconv.Atoi(secsArg)
	if err != nil {
		fmt.Printf("Invalid duration: %v\n", err)
		return
	}

	if err := conn.PauseTube(tube, time.Duration(secs)*time.Second); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Paused tube %q for %ds\n", tube, secs)
}

func printJob(job *beanstalk.Job, err error) {
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if job == nil {
		fmt.Println("No such job")
		return
	}
	fmt.Printf("Job %d: %s\n", job.ID, string(job.Body))
}

func printTubes(tubes []string, err error) {
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	for _, tube := range tubes {
		fmt.Printf("  %s\n", tube)
	}
}

func printDocument(doc *beanstalk.Document, err error) {
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	for _, key := range doc.Keys() {
		value, _ := doc.Get(key)
		fmt.Printf("  %s: %s\n", key, value)
	}
}

func printMetrics(m beanstalk.ConnMetrics) {
	fmt.Println("Client Metrics:")
	fmt.Printf("  Puts: %d\n", m.Puts)
	fmt.Printf("  Reserves: %d (hits: %d)\n", m.Reserves, m.ReserveHits)
	fmt.Printf("  Deletes: %d\n", m.Deletes)
	fmt.Printf("  Releases: %d\n", m.Releases)
	fmt.Printf("  Buries: %d\n", m.Buries)
	fmt.Printf("  Touches: %d\n", m.Touches)
	fmt.Printf("  Kicks: %d\n", m.Kicks)
	fmt.Printf("  Peeks: %d (misses: %d)\n", m.Peeks, m.PeekMisses)
	fmt.Printf("  Errors: %d\n", m.Errors)
}
