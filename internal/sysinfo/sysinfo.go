// Package sysinfo samples host vitals and the process table for the
// system and process modes.
package sysinfo

import (
	"fmt"
	"net"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// Vitals is one sample of the host's health.
type Vitals struct {
	CPUPercent  float64
	MemPercent  float64
	MemUsedMB   uint64
	MemTotalMB  uint64
	TempCelsius float64
	LocalIP     string
	Uptime      time.Duration
	SampledAt   time.Time
}

// Process is one row of the process browser.
type Process struct {
	PID     int32
	Name    string
	CPU     float64
	MemMB   float64
	Command string
}

// Sample collects the current vitals. Individual probe failures leave
// the corresponding field at its zero value rather than failing the
// whole sample.
func Sample() Vitals {
	v := Vitals{SampledAt: time.Now()}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		v.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		v.MemPercent = vm.UsedPercent
		v.MemUsedMB = vm.Used / (1 << 20)
		v.MemTotalMB = vm.Total / (1 << 20)
	}
	v.TempCelsius = temperature()
	v.LocalIP = localIP()
	if up, err := host.Uptime(); err == nil {
		v.Uptime = time.Duration(up) * time.Second
	}
	return v
}

// temperature prefers the gopsutil sensor list and falls back to the
// raw thermal zone, which is all some Pi kernels expose.
func temperature() float64 {
	if temps, err := host.SensorsTemperatures(); err == nil {
		for _, t := range temps {
			if t.Temperature > 0 {
				return t.Temperature
			}
		}
	}
	raw, err := os.ReadFile("/sys/class/thermal/thermal_zone0/temp")
	if err != nil {
		return 0
	}
	milli, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil {
		return 0
	}
	return float64(milli) / 1000.0
}

// localIP discovers the outbound address without sending a packet.
func localIP() string {
	conn, err := net.Dial("udp", "10.255.255.255:1")
	if err != nil {
		return ""
	}
	defer conn.Close()
	if addr, ok := conn.LocalAddr().(*net.UDPAddr); ok {
		return addr.IP.String()
	}
	return ""
}

// TopProcesses lists up to limit processes ordered by CPU usage.
func TopProcesses(limit int) ([]Process, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}
	rows := make([]Process, 0, len(procs))
	for _, p := range procs {
		name, err := p.Name()
		if err != nil || name == "" {
			continue
		}
		cpuPct, _ := p.CPUPercent()
		memPct := float64(0)
		if mi, err := p.MemoryInfo(); err == nil && mi != nil {
			memPct = float64(mi.RSS) / (1 << 20)
		}
		cmdline, _ := p.Cmdline()
		rows = append(rows, Process{
			PID:     p.Pid,
			Name:    name,
			CPU:     cpuPct,
			MemMB:   memPct,
			Command: cmdline,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CPU > rows[j].CPU })
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// SendSignal delivers sig to pid. Used by the process browser for
// SIGTERM and SIGKILL.
func SendSignal(pid int32, sig syscall.Signal) error {
	if err := syscall.Kill(int(pid), sig); err != nil {
		return fmt.Errorf("signal %v to pid %d: %w", sig, pid, err)
	}
	return nil
}

// Cache holds the latest vitals sample for lock-free-looking reads from
// render code. The backend poller refreshes it.
type Cache struct {
	mu sync.Mutex
	v  Vitals
}

// Store replaces the cached sample.
func (c *Cache) Store(v Vitals) {
	c.mu.Lock()
	c.v = v
	c.mu.Unlock()
}

// Load returns the most recent sample.
func (c *Cache) Load() Vitals {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.v
}
