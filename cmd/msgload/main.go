// msgload drives the envelope codec: each worker builds messages with
// random headers and payload, runs them through a full frame
// encode/decode round trip, and records the latency.
//
//	msgload -c config.toml
//	msgload -threads 8 -duration 30 -payload 4096
package main

import (
	"bytes"
	"crypto/rand"
	"flag"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/golang/glog"

	"gcomm/pkg/addr"
	"gcomm/pkg/proto"
	"gcomm/pkg/typereg"
	"gcomm/pkg/util"
	"gcomm/pkg/version"
)

const kMagicSeqno uint16 = 1024

// seqnoHeader stands in for per-layer metadata, a four-byte sequence
// number the way a reliability layer would stamp one.
type seqnoHeader struct {
	seqno uint32
}

func (h *seqnoHeader) MagicID() uint16 {
	return kMagicSeqno
}

func (h *seqnoHeader) SerializedSize() int {
	return 4
}

func (h *seqnoHeader) EncodeTo(buf []byte) (int, error) {
	if len(buf) < 4 {
		return 0, proto.ErrBufferTooShort
	}
	proto.EncByteOrder.PutUint32(buf[0:4], h.seqno)
	return 4, nil
}

func (h *seqnoHeader) DecodeFrom(buf []byte) (int, error) {
	if len(buf) < 4 {
		return 0, proto.ErrBufferTooShort
	}
	h.seqno = proto.EncByteOrder.Uint32(buf[0:4])
	return 4, nil
}

const kMagicBlob uint16 = 1025

// blobObject carries an opaque byte blob as an object payload, with a
// four-byte length prefix.
type blobObject struct {
	data []byte
}

func (o *blobObject) MagicID() uint16 {
	return kMagicBlob
}

func (o *blobObject) SerializedSize() int {
	return 4 + len(o.data)
}

func (o *blobObject) EncodeTo(buf []byte) (int, error) {
	if len(buf) < o.SerializedSize() {
		return 0, proto.ErrBufferTooShort
	}
	proto.EncByteOrder.PutUint32(buf[0:4], uint32(len(o.data)))
	copy(buf[4:], o.data)
	return o.SerializedSize(), nil
}

func (o *blobObject) DecodeFrom(buf []byte) (int, error) {
	if len(buf) < 4 {
		return 0, proto.ErrBufferTooShort
	}
	sz := int(proto.EncByteOrder.Uint32(buf[0:4]))
	if len(buf) < 4+sz {
		return 0, proto.ErrBufferTooShort
	}
	o.data = make([]byte, sz)
	copy(o.data, buf[4:4+sz])
	return 4 + sz, nil
}

func init() {
	typereg.MustRegister(kMagicSeqno, func() proto.Streamable { return &seqnoHeader{} })
	typereg.MustRegister(kMagicBlob, func() proto.Streamable { return &blobObject{} })
}

var numRoundTrips util.AtomicUint64Counter

func buildMessage(cfg *Config, dest, src addr.Address, value []byte) (*proto.Message, error) {
	var m *proto.Message
	var err error
	if cfg.ObjectPayload {
		m, err = proto.NewObjectMessage(dest, &blobObject{data: value})
	} else {
		m, err = proto.NewBytesMessage(dest, value, 0, len(value))
	}
	if err != nil {
		return nil, err
	}
	m.SetSrc(src)
	m.SetFlag(proto.FlagOOB)
	for i := 0; i < cfg.NumHeaders; i++ {
		if err = m.PutHeader(int16(i+1), &seqnoHeader{seqno: uint32(i)}); err != nil {
			return nil, err
		}
	}
	if cfg.Compress {
		if err = m.CompressPayload(); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func worker(cfg *Config, stat *RequestStat, done <-chan struct{}, wg *sync.WaitGroup) {
	defer wg.Done()

	dest := addr.NewUUID()
	src := addr.NewUUID()
	value := make([]byte, cfg.PayloadSize)
	rand.Read(value)

	var buf bytes.Buffer
	for {
		select {
		case <-done:
			return
		default:
		}

		start := time.Now()
		m, err := buildMessage(cfg, dest, src, value)
		if err == nil {
			buf.Reset()
			if _, err = proto.WriteMessage(&buf, m); err == nil {
				_, err = proto.ReadMessage(&buf)
			}
		}
		stat.Put(time.Since(start), err)
		numRoundTrips.Add(1)
		if err != nil {
			glog.Errorf("round trip failed: %v", err)
		}
	}
}

func main() {
	var cfgFile string
	var showVersion bool
	var dumpSample bool
	cfg := defaultConfig
	flag.StringVar(&cfgFile, "c", "", "toml configuration file")
	flag.BoolVar(&showVersion, "version", false, "print version info and exit")
	flag.BoolVar(&dumpSample, "dump", false, "hex-dump one sample encoded message before the run")
	flag.IntVar(&cfg.NumThreads, "threads", cfg.NumThreads, "number of worker threads")
	flag.IntVar(&cfg.DurationSec, "duration", cfg.DurationSec, "run duration in seconds")
	flag.IntVar(&cfg.PayloadSize, "payload", cfg.PayloadSize, "payload size in bytes")
	flag.IntVar(&cfg.NumHeaders, "headers", cfg.NumHeaders, "headers per message")
	flag.BoolVar(&cfg.Compress, "compress", cfg.Compress, "snappy-compress the payload")
	flag.BoolVar(&cfg.ObjectPayload, "object", cfg.ObjectPayload, "send the payload as an object instead of raw bytes")
	flag.Parse()

	if showVersion {
		version.PrintVersionInfo()
		return
	}

	if cfgFile != "" {
		if err := cfg.ReadFromTomlFile(cfgFile); err != nil {
			glog.Exitf("failed to read %s: %v", cfgFile, err)
		}
	}
	cfg.validate()

	glog.Infof("msgload: %d threads, %ds, payload %d bytes, %d headers",
		cfg.NumThreads, cfg.DurationSec, cfg.PayloadSize, cfg.NumHeaders)

	if dumpSample {
		value := make([]byte, cfg.PayloadSize)
		rand.Read(value)
		m, err := buildMessage(&cfg, addr.NewUUID(), addr.NewUUID(), value)
		if err != nil {
			glog.Exitf("failed to build sample message: %v", err)
		}
		raw := make([]byte, m.Size())
		if _, err = m.EncodeTo(raw); err != nil {
			glog.Exitf("failed to encode sample message: %v", err)
		}
		fmt.Printf("sample message %s\n", m)
		util.HexDump(raw)
	}

	var stat RequestStat
	done := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < cfg.NumThreads; i++ {
		wg.Add(1)
		go worker(&cfg, &stat, done, &wg)
	}

	ticker := time.NewTicker(time.Duration(cfg.StatsIntervalSec) * time.Second)
	deadline := time.After(time.Duration(cfg.DurationSec) * time.Second)
loop:
	for {
		select {
		case <-ticker.C:
			glog.Infof("round trips so far: %d", numRoundTrips.Get())
		case <-deadline:
			break loop
		}
	}
	ticker.Stop()
	close(done)
	wg.Wait()

	stat.PrettyPrint(os.Stdout, "roundtrip")
	fmt.Printf("total round trips: %d\n", numRoundTrips.Get())
	glog.Flush()
}
