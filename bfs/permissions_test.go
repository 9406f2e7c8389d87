package bfs

import "testing"

func TestMode_IsDir(t *testing.T) {
	if !AllDir.IsDir() {
		t.Fatal("AllDir should report IsDir")
	}
	if All.IsDir() {
		t.Fatal("All should not report IsDir")
	}
}

func TestCanReadWrite_OwnerVsOther(t *testing.T) {
	mode := OwnRead | OwnWrite

	if !canRead(mode, 1, 1) {
		t.Error("owner should be able to read with OwnRead set")
	}
	if canRead(mode, 1, 2) {
		t.Error("non-owner should not be able to read without OthRead set")
	}
	if !canWrite(mode, 1, 1) {
		t.Error("owner should be able to write with OwnWrite set")
	}
	if canWrite(mode, 1, 2) {
		t.Error("non-owner should not be able to write without OthWrite set")
	}

	withOther := mode | OthRead | OthWrite
	if !canRead(withOther, 1, 2) {
		t.Error("non-owner should be able to read with OthRead set")
	}
	if !canWrite(withOther, 1, 2) {
		t.Error("non-owner should be able to write with OthWrite set")
	}
}
