// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"
	"net/url"
	"strings"
	"time"
)

// MaxWebhookURLLength is the maximum allowed length for a webhook URL.
const MaxWebhookURLLength = 2048

// reservedPrefixes lists private, loopback, link-local and otherwise
// reserved address ranges.
var reservedPrefixes = []netip.Prefix{
	netip.MustParsePrefix("10.0.0.0/8"),
	netip.MustParsePrefix("172.16.0.0/12"),
	netip.MustParsePrefix("192.168.0.0/16"),
	netip.MustParsePrefix("127.0.0.0/8"),
	netip.MustParsePrefix("169.254.0.0/16"),
	netip.MustParsePrefix("0.0.0.0/8"),
	netip.MustParsePrefix("100.64.0.0/10"), // CGNAT
	netip.MustParsePrefix("192.0.0.0/24"),
	netip.MustParsePrefix("192.0.2.0/24"),
	netip.MustParsePrefix("198.18.0.0/15"),
	netip.MustParsePrefix("198.51.100.0/24"),
	netip.MustParsePrefix("203.0.113.0/24"),
	netip.MustParsePrefix("224.0.0.0/4"),
	netip.MustParsePrefix("240.0.0.0/4"),
	netip.MustParsePrefix("::1/128"),
	netip.MustParsePrefix("fe80::/10"),
	netip.MustParsePrefix("fc00::/7"),
	netip.MustParsePrefix("::/128"),
}

// IsPrivateIP reports whether ip is in a private or reserved range.
// Nil and malformed addresses count as private.
func IsPrivateIP(ip net.IP) bool {
	addr, ok := netip.AddrFromSlice(ip)
	if !ok {
		return true
	}
	addr = addr.Unmap()
	for _, p := range reservedPrefixes {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// ValidateWebhookURL rejects URLs that are not http(s) or that point at a
// private address, either directly or through DNS.
func ValidateWebhookURL(rawURL string) error {
	if len(rawURL) > MaxWebhookURLLength {
		return fmt.Errorf("URL exceeds maximum length of %d characters", MaxWebhookURLLength)
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL format: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("URL must use http or https scheme")
	}

	host := strings.ToLower(u.Hostname())
	switch {
	case host == "":
		return errors.New("URL must have a hostname")
	case host == "localhost" || strings.HasSuffix(host, ".localhost"):
		return errors.New("localhost URLs are not allowed")
	}

	if ip := net.ParseIP(host); ip != nil {
		if IsPrivateIP(ip) {
			return errors.New("private or reserved IP addresses are not allowed")
		}
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	ips, err := net.DefaultResolver.LookupIPAddr(ctx, host)
	if err != nil {
		return fmt.Errorf("failed to resolve hostname %q: %w", host, err)
	}
	if len(ips) == 0 {
		return fmt.Errorf("hostname %q did not resolve to any IP addresses", host)
	}
	for _, ip := range ips {
		if IsPrivateIP(ip.IP) {
			return fmt.Errorf("hostname %q resolves to private IP address %s", host, ip.IP)
		}
	}
	return nil
}

// SSRFSafeDialContext wraps dialer so that it resolves the host itself and
// dials the resolved address only when no record is private.
func SSRFSafeDialContext(dialer *net.Dialer) func(ctx context.Context, network, addr string) (net.Conn, error) {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		host, port, err := net.SplitHostPort(addr)
		if err != nil {
			return nil, fmt.Errorf("invalid address %q: %w", addr, err)
		}
		ips, err := net.DefaultResolver.LookupIPAddr(ctx, host)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %q: %w", host, err)
		}
		for _, ip := range ips {
			if IsPrivateIP(ip.IP) {
				return nil, fmt.Errorf("connection to private IP %s (resolved from %q) is blocked", ip.IP, host)
			}
		}

		lastErr := fmt.Errorf("no addresses for %q", host)
		for _, ip := range ips {
			conn, err := dialer.DialContext(ctx, network, net.JoinHostPort(ip.IP.String(), port))
			if err == nil {
				return conn, nil
			}
			lastErr = err
		}
		return nil, fmt.Errorf("failed to connect to %q: %w", host, lastErr)
	}
}
