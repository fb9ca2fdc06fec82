// Package csvio writes and reads the benchmark's CSV files.
//
// A timing file starts with the header Size,Bubble,Shaker,Heap,Std followed
// by one row per input size, durations given as decimal milliseconds. A record
// file starts with FullName,BirthYear,DeathYear,ChildrenCount followed by one
// row per record.
//
// TimingWriter implements sortbench.TimingSink and RecordWriter implements
// sortbench.RecordSink.
package csvio
