package cachecheck

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// Target is the resolved cluster configuration endpoint.
type Target struct {
	Host string
	Port int
}

// Address joins host and port for dialing.
func (t Target) Address() string {
	return net.JoinHostPort(t.Host, strconv.Itoa(t.Port))
}

func (t Target) String() string { return t.Address() }

// ParseEndpoint resolves the endpoint flag against a separately supplied port.
// A port embedded in the endpoint ("host:port") always wins over port.
//
// Example: embedded port overrides the flag
//
//	target, _ := cachecheck.ParseEndpoint("my-cluster.cache.amazonaws.com:11212", 11211)
//	fmt.Println(target.Port) // 11212
func ParseEndpoint(endpoint string, port int) (Target, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return Target{}, fmt.Errorf("%w: endpoint is required", ErrMissingArgument)
	}
	host := endpoint
	if strings.Contains(endpoint, ":") {
		h, p, err := net.SplitHostPort(endpoint)
		if err != nil {
			return Target{}, fmt.Errorf("%w: endpoint %q: %v", ErrMissingArgument, endpoint, err)
		}
		embedded, err := parsePort(p)
		if err != nil {
			return Target{}, fmt.Errorf("%w: endpoint %q: %v", ErrMissingArgument, endpoint, err)
		}
		host, port = h, embedded
	}
	if host == "" {
		return Target{}, fmt.Errorf("%w: endpoint %q has no host", ErrMissingArgument, endpoint)
	}
	if port < 1 || port > 65535 {
		return Target{}, fmt.Errorf("%w: port %d out of range", ErrMissingArgument, port)
	}
	return Target{Host: host, Port: port}, nil
}

func parsePort(raw string) (int, error) {
	port, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid port %q", raw)
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("port %d out of range", port)
	}
	return port, nil
}
