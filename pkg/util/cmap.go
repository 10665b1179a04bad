package util

import (
	"sync"

	"github.com/golang/glog"
	"github.com/spaolacci/murmur3"
)

type MapPartition struct {
	sync.RWMutex
	data map[string]interface{}
}

type CMap struct {
	partitions     []*MapPartition
	partitionCount uint32
}

func NewCMap(partitionCount uint32) *CMap {
	m := new(CMap)
	m.partitionCount = partitionCount
	m.partitions = make([]*MapPartition, partitionCount)
	for i := 0; i < int(partitionCount); i++ {
		m.partitions[i] = &MapPartition{data: make(map[string]interface{})}
	}
	return m
}

func (m *CMap) getPartition(key string) *MapPartition {
	partitionNo := murmur3.Sum32([]byte(key)) % m.partitionCount
	return m.partitions[partitionNo]
}

func (m *CMap) Put(key []byte, value interface{}) {
	keyStr := string(key)
	glog.V(2).Infof("CMAP Put >> key:%X", key)
	partition := m.getPartition(keyStr)
	partition.Lock()
	partition.data[keyStr] = value
	partition.Unlock()
}

func (m *CMap) Get(key []byte) (interface{}, bool) {
	keyStr := string(key)
	partition := m.getPartition(keyStr)
	partition.RLock()
	val, present := partition.data[keyStr]
	partition.RUnlock()
	return val, present
}

func (m *CMap) Delete(key []byte) {
	keyStr := string(key)
	partition := m.getPartition(keyStr)
	partition.Lock()
	delete(partition.data, keyStr)
	partition.Unlock()
}

func (m *CMap) PutIfAbsent(key []byte, value interface{}) (interface{}, bool) {
	keyStr := string(key)
	partition := m.getPartition(keyStr)
	partition.Lock() //can't use read lock and upgrade atomically
	curValue, present := partition.data[keyStr]
	if !present {
		partition.data[keyStr] = value
	}
	partition.Unlock()
	return curValue, !present
}
