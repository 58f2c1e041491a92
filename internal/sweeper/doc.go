// Package sweeper поддерживает join-записи каталога.
//
// Удаление мягкое и не трогает связи, поэтому sweeper:
//   - по событиям *.deleted / *.restored из очереди catalog.sweeper
//     помечает или восстанавливает связи записи (Cascade);
//   - по расписанию помечает висячие связи (Reconcile) и физически
//     удаляет записи старше retention (Purge).
//
// Использование:
//
//	sw := sweeper.New(sweeper.Config{
//	    Repos:     repos,
//	    Logger:    logger,
//	    Retention: 30 * 24 * time.Hour,
//	})
//
//	consumer := mq.NewConsumer(conn, logger, mq.ConsumerConfig{
//	    Queue:   mq.QueueSweeper,
//	    Handler: sw.HandleMessage,
//	})
//	go consumer.Run(ctx)
//
//	sw.Run(ctx, "@every 1h")
package sweeper
