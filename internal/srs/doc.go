// Package srs は語彙復習のための SM-2 スケジューラです。
//
// 入出力はすべて値で、I/O も乱数も使いません。永続化は呼び出し側 (internal/store) の責務です。
//
//	rec := srs.NewRecord("amicitia", today)
//	rec, err := srs.RecordReview(rec, srs.QualityGood, today)
//	due := srs.DueItems(records, today)
package srs
