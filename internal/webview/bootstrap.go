package webview

// bootstrapScript is injected once after the engine comes up. It defines the
// messaging convention both sides rely on: send() serializes a
// {channel, data} envelope and posts it to the host, on() registers a
// per-channel callback, and receive() is invoked by the host through script
// evaluation to deliver pushes.
const bootstrapScript = `
window.__glass_ipc = {
    callbacks: {},

    send: function(channel, data) {
        window.ipc.postMessage(JSON.stringify({
            channel: channel,
            data: data
        }));
    },

    on: function(channel, callback) {
        if (!this.callbacks[channel]) {
            this.callbacks[channel] = [];
        }
        this.callbacks[channel].push(callback);
    },

    receive: function(channel, data) {
        if (this.callbacks[channel]) {
            this.callbacks[channel].forEach(function(cb) {
                try { cb(data); } catch (e) { console.error(e); }
            });
        }
    }
};
`
