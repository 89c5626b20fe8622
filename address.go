package syshttp

import (
	"fmt"
	"net/url"
	"strconv"
)

// WildcardHost matches all local addresses.
const WildcardHost = "0.0.0.0"

// Address specifies where to listen: either a fully qualified URL string, or a
// port with an optional hostname, defaulting to the wildcard host. Supplying both
// an URL and a hostname is rejected.
type Address struct {
	URL  string
	Port int
	Host string
}

// Addr returns a port-and-hostname address. With no hostname given, the wildcard
// host is used.
func Addr(port int, optionalHost ...string) Address {
	return Address{
		Port: port,
		Host: optional(optionalHost, ""),
	}
}

// AddrURL returns an address specified by a fully qualified URL string, e.g.
// "http://*:8080/".
func AddrURL(u string) Address {
	return Address{URL: u}
}

func (a Address) String() string {
	if len(a.URL) > 0 {
		return a.URL
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// normalize validates the address and resolves it to a plain host-port form.
func (a Address) normalize() (Address, error) {
	if len(a.URL) > 0 {
		if len(a.Host) > 0 {
			return a, fmt.Errorf("%w: both an URL and a hostname are supplied", ErrInvalidArgument)
		}

		return parseURL(a.URL)
	}

	if a.Port <= 0 || a.Port > 65535 {
		return a, fmt.Errorf("%w: port is missing or out of range", ErrInvalidArgument)
	}

	if len(a.Host) == 0 {
		a.Host = WildcardHost
	}

	return a, nil
}

func parseURL(raw string) (Address, error) {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return Address{}, fmt.Errorf("%w: not an URL string: %s", ErrInvalidArgument, raw)
	}

	port := 80
	if u.Scheme == "https" {
		port = 443
	}
	if len(u.Port()) > 0 {
		port, err = strconv.Atoi(u.Port())
		if err != nil {
			return Address{}, fmt.Errorf("%w: port is not numeric: %s", ErrInvalidArgument, u.Port())
		}
	}

	host := u.Hostname()
	if len(host) == 0 || host == "*" || host == "+" {
		host = WildcardHost
	}

	return Address{Port: port, Host: host}, nil
}

func optional[T any](optionals []T, otherwise T) T {
	if len(optionals) == 0 {
		return otherwise
	}

	return optionals[0]
}
