package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/michaelgov-ctrl/svg-clock/clock"
	"github.com/michaelgov-ctrl/svg-clock/session"
)

const usage = `commands:
  hour X Y      drag the hour hand to page position X,Y
  minute X Y    drag the minute hand to page position X,Y
  time H M S    set the time
  layout L T    move the container to L,T`

func main() {
	var (
		addr   = flag.String("addr", "localhost:8080", "server address")
		preset = flag.String("preset", "picker-5", "clock preset")
		origin = flag.String("origin", "", "Origin header to send")
		left   = flag.Float64("left", 0, "container left offset")
		top    = flag.Float64("top", 0, "container top offset")
	)
	flag.Parse()

	serverURL := url.URL{Scheme: "ws", Host: *addr, Path: "/ws"}

	header := http.Header{}
	if *origin != "" {
		header.Add("Origin", *origin)
	}

	log.Printf("connecting to %s...", serverURL.String())
	conn, _, err := websocket.DefaultDialer.Dial(serverURL.String(), header)
	if err != nil {
		log.Fatalf("failed to connect to ws server: %v", err)
	}
	defer conn.Close()

	go func() {
		for {
			_, reply, err := conn.ReadMessage()
			if err != nil {
				log.Fatalf("failed to read message: %v", err)
			}
			log.Printf("received: %s\n", reply)
		}
	}()

	err = send(conn, session.EventInitClock, session.InitClockEvent{
		Preset: *preset,
		Offset: clock.Offset{Left: *left, Top: *top},
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(usage)

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		events, err := parseCommand(scanner.Text())
		if err != nil {
			fmt.Println(err)
			continue
		}

		for _, evt := range events {
			if err := conn.WriteJSON(evt); err != nil {
				log.Fatalf("failed to send message: %v", err)
			}
			log.Printf("sent: %s %s\n", evt.Type, evt.Payload)
		}
	}
}

func send(conn *websocket.Conn, t string, payload any) error {
	evt, err := session.NewOutgoingEvent(t, payload)
	if err != nil {
		return err
	}

	return conn.WriteJSON(evt)
}

// parseCommand turns one input line into the events to send. A drag command
// becomes a complete start, move, end sequence at the given point.
func parseCommand(line string) ([]session.Event, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, nil
	}

	args, err := floats(fields[1:])
	if err != nil {
		return nil, err
	}

	switch fields[0] {
	case "hour", "minute":
		if len(args) != 2 {
			return nil, fmt.Errorf("%s needs X and Y", fields[0])
		}

		hand, err := clock.HandFromString(fields[0])
		if err != nil {
			return nil, err
		}

		ev := clock.PointerEvent{X: args[0], Y: args[1]}

		var events []session.Event
		for _, t := range []string{session.EventDragStart, session.EventDragMove, session.EventDragEnd} {
			evt, err := session.NewOutgoingEvent(t, session.DragEvent{Hand: hand, PointerEvent: ev})
			if err != nil {
				return nil, err
			}
			events = append(events, evt)
		}

		return events, nil

	case "time":
		if len(args) == 0 || len(args) > 3 {
			return nil, errors.New("time needs H [M [S]]")
		}

		req := session.SetTimeEvent{Hour: int(args[0])}
		if len(args) > 1 {
			minute := int(args[1])
			req.Minute = &minute
		}
		if len(args) > 2 {
			second := int(args[2])
			req.Second = &second
		}

		evt, err := session.NewOutgoingEvent(session.EventSetTime, req)
		if err != nil {
			return nil, err
		}

		return []session.Event{evt}, nil

	case "layout":
		if len(args) != 2 {
			return nil, errors.New("layout needs LEFT and TOP")
		}

		evt, err := session.NewOutgoingEvent(session.EventLayout, session.LayoutEvent{Offset: clock.Offset{Left: args[0], Top: args[1]}})
		if err != nil {
			return nil, err
		}

		return []session.Event{evt}, nil
	}

	return nil, fmt.Errorf("unknown command %q\n%s", fields[0], usage)
}

func floats(fields []string) ([]float64, error) {
	values := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", f)
		}
		values = append(values, v)
	}

	return values, nil
}
