//go:build windows

package speech

import (
	"fmt"
	"log"
	"runtime"
	"sync"

	ole "github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
)

// SAPI automation constants.
const (
	svsfAsync            = 1 // SVSFlagsAsync
	svsfPurgeBeforeSpeak = 2 // SVSFPurgeBeforeSpeak
	srseIsSpeaking       = 2 // SpeechRunState
)

// sapiEngine drives the Windows SAPI automation voice. SAPI rates run -10..10
// while config speaks in words per minute, so rates are mapped around the
// 180 wpm midpoint.
//
// COM apartment rules tie the SpVoice object to the thread that created it,
// so a dedicated locked thread owns the object and every call is marshaled
// onto it through the calls channel.
type sapiEngine struct {
	voice *ole.IDispatch // touched only on the COM thread

	calls     chan func()
	quit      chan struct{} // closed by Close
	done      chan struct{} // closed when the COM thread exits
	closeOnce sync.Once
}

// NewSAPIEngine creates the SAPI.SpVoice automation object on its own
// COM-initialized thread.
func NewSAPIEngine() (Engine, error) {
	e := &sapiEngine{
		calls: make(chan func()),
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	ready := make(chan error, 1)
	go e.comThread(ready)
	if err := <-ready; err != nil {
		return nil, err
	}
	return e, nil
}

func (e *sapiEngine) comThread(ready chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(e.done)

	if err := ole.CoInitialize(0); err != nil {
		oleCode := err.(*ole.OleError).Code()
		// S_FALSE means COM was already initialized on this thread.
		if oleCode != 1 {
			ready <- fmt.Errorf("COM initialization failed: %v", err)
			return
		}
	}
	defer ole.CoUninitialize()

	unknown, err := oleutil.CreateObject("SAPI.SpVoice")
	if err != nil {
		ready <- fmt.Errorf("failed to create SAPI.SpVoice: %v", err)
		return
	}
	defer unknown.Release()

	voice, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		ready <- fmt.Errorf("SAPI.SpVoice has no IDispatch: %v", err)
		return
	}
	defer voice.Release()

	e.voice = voice
	ready <- nil

	for {
		select {
		case call := <-e.calls:
			call()
		case <-e.quit:
			return
		}
	}
}

// run executes fn on the COM thread and waits for it to finish. After Close
// the engine is gone and fn is silently dropped.
func (e *sapiEngine) run(fn func()) {
	ran := make(chan struct{})
	select {
	case e.calls <- func() { fn(); close(ran) }:
		<-ran
	case <-e.done:
	}
}

func (e *sapiEngine) Speak(text string) error {
	var err error
	e.run(func() {
		// Purge cuts anything still queued; async returns immediately.
		_, err = oleutil.CallMethod(e.voice, "Speak", text, svsfAsync|svsfPurgeBeforeSpeak)
	})
	if err != nil {
		return fmt.Errorf("SAPI Speak failed: %v", err)
	}
	return nil
}

func (e *sapiEngine) Stop() error {
	var err error
	e.run(func() {
		// Speaking empty text with purge flushes the queue and stops playback.
		_, err = oleutil.CallMethod(e.voice, "Speak", "", svsfAsync|svsfPurgeBeforeSpeak)
	})
	if err != nil {
		return fmt.Errorf("SAPI stop failed: %v", err)
	}
	return nil
}

func (e *sapiEngine) Busy() bool {
	var busy bool
	e.run(func() {
		status, err := oleutil.GetProperty(e.voice, "Status")
		if err != nil {
			log.Printf("ERROR: SAPI Status query failed: %v", err)
			return
		}
		statusDisp := status.ToIDispatch()
		defer statusDisp.Release()

		runState, err := oleutil.GetProperty(statusDisp, "RunningState")
		if err != nil {
			log.Printf("ERROR: SAPI RunningState query failed: %v", err)
			return
		}
		busy = runState.Val == srseIsSpeaking
	})
	return busy
}

func (e *sapiEngine) SetRate(wordsPerMinute int) error {
	sapiRate := (wordsPerMinute - 180) / 20
	if sapiRate < -10 {
		sapiRate = -10
	}
	if sapiRate > 10 {
		sapiRate = 10
	}
	var err error
	e.run(func() {
		_, err = oleutil.PutProperty(e.voice, "Rate", sapiRate)
	})
	if err != nil {
		return fmt.Errorf("SAPI rate %d failed: %v", sapiRate, err)
	}
	log.Printf("SAPI rate set to %d (%d wpm)", sapiRate, wordsPerMinute)
	return nil
}

func (e *sapiEngine) SetVoice(id string) error {
	var err error
	e.run(func() { err = e.setVoiceLocked(id) })
	return err
}

func (e *sapiEngine) setVoiceLocked(id string) error {
	tokens, err := oleutil.CallMethod(e.voice, "GetVoices")
	if err != nil {
		return fmt.Errorf("SAPI GetVoices failed: %v", err)
	}
	tokensDisp := tokens.ToIDispatch()
	defer tokensDisp.Release()

	count, err := oleutil.GetProperty(tokensDisp, "Count")
	if err != nil {
		return fmt.Errorf("SAPI voice count failed: %v", err)
	}
	for i := 0; i < int(count.Val); i++ {
		item, err := oleutil.CallMethod(tokensDisp, "Item", i)
		if err != nil {
			continue
		}
		token := item.ToIDispatch()
		tokenID, err := oleutil.GetProperty(token, "Id")
		if err != nil {
			token.Release()
			continue
		}
		if tokenID.ToString() == id {
			_, err = oleutil.PutPropertyRef(e.voice, "Voice", token)
			token.Release()
			if err != nil {
				return fmt.Errorf("SAPI voice select failed: %v", err)
			}
			return nil
		}
		token.Release()
	}
	return fmt.Errorf("no SAPI voice with id %q", id)
}

func (e *sapiEngine) CurrentVoice() (string, error) {
	var id string
	var err error
	e.run(func() { id, err = e.currentVoiceLocked() })
	return id, err
}

func (e *sapiEngine) currentVoiceLocked() (string, error) {
	current, err := oleutil.GetProperty(e.voice, "Voice")
	if err != nil {
		return "", fmt.Errorf("SAPI current voice query failed: %v", err)
	}
	token := current.ToIDispatch()
	defer token.Release()

	id, err := oleutil.GetProperty(token, "Id")
	if err != nil {
		return "", fmt.Errorf("SAPI voice id query failed: %v", err)
	}
	return id.ToString(), nil
}

func (e *sapiEngine) Voices() ([]Voice, error) {
	var voices []Voice
	var err error
	e.run(func() { voices, err = e.voicesLocked() })
	return voices, err
}

func (e *sapiEngine) voicesLocked() ([]Voice, error) {
	tokens, err := oleutil.CallMethod(e.voice, "GetVoices")
	if err != nil {
		return nil, fmt.Errorf("SAPI GetVoices failed: %v", err)
	}
	tokensDisp := tokens.ToIDispatch()
	defer tokensDisp.Release()

	count, err := oleutil.GetProperty(tokensDisp, "Count")
	if err != nil {
		return nil, fmt.Errorf("SAPI voice count failed: %v", err)
	}

	var voices []Voice
	for i := 0; i < int(count.Val); i++ {
		item, err := oleutil.CallMethod(tokensDisp, "Item", i)
		if err != nil {
			continue
		}
		token := item.ToIDispatch()
		id, idErr := oleutil.GetProperty(token, "Id")
		name, nameErr := oleutil.CallMethod(token, "GetDescription")
		if idErr == nil && nameErr == nil {
			voices = append(voices, Voice{ID: id.ToString(), Name: name.ToString()})
		}
		token.Release()
	}
	return voices, nil
}

func (e *sapiEngine) Close() {
	e.closeOnce.Do(func() { close(e.quit) })
	<-e.done
}
