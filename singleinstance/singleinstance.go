// Package singleinstance prevents a second copy of the application from
// running, using a TCP loopback port as the process-wide lock. The resident
// instance answers PING so a newcomer can tell the lock holder apart from an
// unrelated process squatting on the port.
package singleinstance

import (
	"bufio"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"time"
)

const (
	residentHost = "127.0.0.1"
	pingRequest  = "PING\n"
	pongResponse = "PONG\n"

	defaultPortStart = 49500
	defaultPortEnd   = 49550

	pingTimeout = 300 * time.Millisecond
)

// ErrAlreadyRunning reports that another instance holds the lock.
var ErrAlreadyRunning = errors.New("another instance is already running")

// Lock is held TCP loopback ownership. Release it on shutdown; the OS also
// releases it if the process dies.
type Lock struct {
	lis  net.Listener
	port int
}

// Acquire walks the configured range in order: bind the port, or, when it is
// taken, ping it. A PONG means the holder is another instance of us; silence
// means an unrelated process squats there and the next port is tried. Walking
// in a fixed order guarantees a resident is found before a later port is
// bound, so two instances can never both hold a lock.
func Acquire() (*Lock, error) {
	start, end := portRange()
	for port := start; port <= end; port++ {
		addr := net.JoinHostPort(residentHost, strconv.Itoa(port))
		lis, err := net.Listen("tcp", addr)
		if err != nil {
			if ping(addr) {
				return nil, ErrAlreadyRunning
			}
			log.Printf("Port %s occupied by an unrelated process, trying next", addr)
			continue
		}
		lock := &Lock{lis: lis, port: port}
		go lock.answerPings()
		log.Printf("Instance lock acquired on %s", addr)
		return lock, nil
	}
	return nil, fmt.Errorf("no usable instance-lock port in [%d, %d]", start, end)
}

// Port returns the bound port.
func (l *Lock) Port() int { return l.port }

// Release frees the lock.
func (l *Lock) Release() error {
	return l.lis.Close()
}

func (l *Lock) answerPings() {
	for {
		c, err := l.lis.Accept()
		if err != nil {
			return
		}
		go func(c net.Conn) {
			defer c.Close()
			c.SetDeadline(time.Now().Add(3 * time.Second))
			line, err := bufio.NewReader(c).ReadString('\n')
			if err != nil || line != pingRequest {
				return
			}
			w := bufio.NewWriter(c)
			w.WriteString(pongResponse)
			w.Flush()
		}(c)
	}
}

func ping(addr string) bool {
	conn, err := net.DialTimeout("tcp", addr, pingTimeout)
	if err != nil {
		return false
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(pingTimeout))

	w := bufio.NewWriter(conn)
	if _, err := w.WriteString(pingRequest); err != nil {
		return false
	}
	if err := w.Flush(); err != nil {
		return false
	}
	resp, err := bufio.NewReader(conn).ReadString('\n')
	return err == nil && resp == pongResponse
}

// portRange reads SINGLEINSTANCE_PORT_START and SINGLEINSTANCE_PORT_END,
// clamping to [1024, 65535] and falling back to the defaults when unset.
func portRange() (int, int) {
	start := defaultPortStart
	end := defaultPortEnd
	if v := os.Getenv("SINGLEINSTANCE_PORT_START"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			start = n
		}
	}
	if v := os.Getenv("SINGLEINSTANCE_PORT_END"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			end = n
		}
	}
	if start < 1024 {
		start = 1024
	}
	if end > 65535 {
		end = 65535
	}
	if end < start {
		start, end = end, start
	}
	return start, end
}
