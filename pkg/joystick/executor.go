package joystick

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"os/exec"
	"time"

	"golang.org/x/crypto/ssh"
	"joystick.io/fleet-control/pkg/models"
)

const (
	SlotPrimary   = "primary"
	SlotSecondary = "secondary"

	defaultSSHPort = "22"
)

// Connection is how the joystick host reaches one device.
type Connection struct {
	Host     string
	Port     string
	User     string
	Password string
	Key      string
	Phone    string
}

func infoString(info map[string]any, key string) string {
	if info == nil {
		return ""
	}
	switch v := info[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return FormatValue(v)
	}
}

// ActiveConnection picks the secondary slot host and phone when the device is
// switched to it and a secondary host is configured, the primary otherwise.
func ActiveConnection(device *models.Device) Connection {
	info := device.Information
	conn := Connection{
		Host:     infoString(info, "host"),
		Port:     infoString(info, "port"),
		User:     infoString(info, "user"),
		Password: infoString(info, "password"),
		Key:      infoString(info, "key"),
		Phone:    infoString(info, "phone"),
	}

	if infoString(info, "activeSlot") == SlotSecondary {
		if host := infoString(info, "secondSlotHost"); host != "" {
			conn.Host = host
			conn.Phone = infoString(info, "secondSlotPhone")
		}
	}
	return conn
}

// ShellExecutor runs local commands through sh and device commands over SSH.
type ShellExecutor struct {
	Shell       string
	DialTimeout time.Duration
}

func NewShellExecutor() *ShellExecutor {
	return &ShellExecutor{Shell: "sh", DialTimeout: 10 * time.Second}
}

func (e *ShellExecutor) RunLocal(ctx context.Context, command string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.Shell, "-c", command)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return stdout.String(), &CommandError{Command: command, Stderr: stderr.String(), Err: err}
	}
	return stdout.String(), nil
}

func (e *ShellExecutor) sshConfig(conn Connection) (*ssh.ClientConfig, error) {
	var auth []ssh.AuthMethod
	switch {
	case conn.Key != "":
		signer, err := ssh.ParsePrivateKey([]byte(conn.Key))
		if err != nil {
			return nil, fmt.Errorf("invalid device ssh key: %w", err)
		}
		auth = append(auth, ssh.PublicKeys(signer))
	case conn.Password != "":
		auth = append(auth, ssh.Password(conn.Password))
	}

	return &ssh.ClientConfig{
		User: conn.User,
		Auth: auth,
		// devices are reflashed in the field and their host keys change
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         e.DialTimeout,
	}, nil
}

func (e *ShellExecutor) RunOnDevice(ctx context.Context, conn Connection, command string) (string, error) {
	if conn.Host == "" {
		return "", errors.New("device has no host configured")
	}

	config, err := e.sshConfig(conn)
	if err != nil {
		return "", err
	}

	port := conn.Port
	if port == "" {
		port = defaultSSHPort
	}

	client, err := ssh.Dial("tcp", net.JoinHostPort(conn.Host, port), config)
	if err != nil {
		return "", fmt.Errorf("ssh %s@%s: %w", conn.User, conn.Host, err)
	}
	defer client.Close()

	session, err := client.NewSession()
	if err != nil {
		return "", fmt.Errorf("ssh session %s: %w", conn.Host, err)
	}
	defer session.Close()

	var stdout, stderr bytes.Buffer
	session.Stdout = &stdout
	session.Stderr = &stderr

	done := make(chan error, 1)
	go func() { done <- session.Run(command) }()

	select {
	case <-ctx.Done():
		_ = client.Close()
		return "", ctx.Err()
	case err := <-done:
		if err != nil {
			return stdout.String(), &CommandError{Command: command, Stderr: stderr.String(), Err: err}
		}
		return stdout.String(), nil
	}
}

func (e *ShellExecutor) Ping(ctx context.Context, host string) (string, error) {
	out, err := exec.CommandContext(ctx, "ping", "-c", "1", host).CombinedOutput()
	return string(out), err
}
